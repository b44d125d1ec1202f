package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the API router with the global middleware stack.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(CORS(allowedOrigins))

	r.Get("/health", HealthCheck)

	r.Route("/packages", func(r chi.Router) {
		r.Post("/", h.CreatePackage)
		r.Get("/", h.ListPackages)
		r.Get("/{id}", h.GetPackage)
		r.Post("/{id}/reviews", h.AddReview)
		r.Get("/{id}/reviews", h.ListReviews)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", h.Book)
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Post("/{id}/cancel", h.CancelBooking)
		r.Post("/{id}/payments", h.RecordPayment)
		r.Get("/{id}/payments", h.ListBookingPayments)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.ListPayments)
		r.Get("/{id}/receipt", h.Receipt)
	})

	r.Post("/recommendations", h.Recommend)
	r.Post("/contact", h.Contact)
	r.Post("/exports/{collection}", h.Export)

	return r
}
