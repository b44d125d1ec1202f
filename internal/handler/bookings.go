package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Book handles POST /bookings
// Performs a concurrency-safe booking of a package for an event date.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	b, err := h.svc.Book(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// ListBookings handles GET /bookings
// An email query parameter scopes the list to one customer.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	page, err := h.svc.ListBookings(r.Context(), email, h.listQuery(r, model.KindBooking))
	if err != nil {
		writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetBooking handles GET /bookings/{id}
// The id may be the UUID or the reference code.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CancelBooking handles POST /bookings/{id}/cancel
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// RecordPayment handles POST /bookings/{id}/payments
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListBookingPayments handles GET /bookings/{id}/payments
func (h *Handler) ListBookingPayments(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListPayments(r.Context(), chi.URLParam(r, "id"), h.listQuery(r, model.KindPayment))
	if err != nil {
		writeServiceError(w, r, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListPayments handles GET /payments
// A booking query parameter (UUID or reference) scopes the history.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListPayments(r.Context(), r.URL.Query().Get("booking"), h.listQuery(r, model.KindPayment))
	if err != nil {
		writeServiceError(w, r, err, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Receipt handles GET /payments/{id}/receipt
// Returns the PDF receipt inline.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := h.svc.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "payment not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
