package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// RecommendResponse pairs the stored request with its scored packages.
type RecommendResponse struct {
	Request *model.RecommendationRequest       `json:"request"`
	Results listing.Page[model.Recommendation] `json:"results"`
}

// Recommend handles POST /recommendations
// The body is the recommendation form; list parameters come from the URL.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req model.RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	stored, page, err := h.svc.Recommend(r.Context(), req, h.listQuery(r, model.KindRecommendation))
	if err != nil {
		writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusCreated, RecommendResponse{Request: stored, Results: page})
}

// Contact handles POST /contact
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in, err := h.svc.Contact(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "not found")
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

// Export handles POST /exports/{collection}
// Writes the filtered and sorted collection (unpaged) to S3 as JSONL.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	kind := model.KindPackage
	switch collection {
	case "bookings":
		kind = model.KindBooking
	case "payments":
		kind = model.KindPayment
	}

	res, err := h.svc.Export(r.Context(), collection, h.listQuery(r, kind))
	if err != nil {
		writeServiceError(w, r, err, "unknown collection")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
