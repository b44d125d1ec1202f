package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// CreatePackage handles POST /packages
func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePackageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := h.svc.CreatePackage(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListPackages handles GET /packages
// Supports status, q, min_price, max_price, min_capacity, sort, page, page_size.
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListPackages(r.Context(), h.listQuery(r, model.KindPackage))
	if err != nil {
		writeServiceError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetPackage handles GET /packages/{id}
func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AddReview handles POST /packages/{id}/reviews
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rv, err := h.svc.AddReview(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// ListReviews handles GET /packages/{id}/reviews
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.ListReviews(r.Context(), chi.URLParam(r, "id"), h.listQuery(r, model.KindReview))
	if err != nil {
		writeServiceError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}
