package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Book validates the booking form and delegates the concurrency-safe
// reservation to the repository layer.
func (s *Service) Book(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validate(s.schemas.Booking, req.Values()); err != nil {
		return nil, err
	}
	date, err := parseDate("event_date", req.EventDate)
	if err != nil {
		return nil, err
	}

	b, err := s.bookings.Book(ctx, req, date)
	if err != nil {
		return nil, wrap("book package", err)
	}
	s.publish(ctx, events.TopicBookingCreated, events.BookingCreated{Booking: b})
	return b, nil
}

// GetBooking returns a booking by ID or reference code.
func (s *Service) GetBooking(ctx context.Context, idOrRef string) (*model.Booking, error) {
	b, err := s.bookings.Get(ctx, idOrRef)
	if err != nil {
		return nil, wrap("get booking", err)
	}
	return b, nil
}

// ListBookings runs bookings through the list pipeline. A non-empty email
// scopes the list to one customer.
func (s *Service) ListBookings(ctx context.Context, email string, q listing.Query) (listing.Page[model.Booking], error) {
	bookings, err := s.bookings.List(ctx, email)
	if err != nil {
		return listing.Page[model.Booking]{}, wrap("list bookings", err)
	}
	return listing.Run(bookings, q, s.MissingPolicy()), nil
}

// CancelBooking cancels a booking and frees its guests from the date.
func (s *Service) CancelBooking(ctx context.Context, idOrRef string) (*model.Booking, error) {
	b, err := s.bookings.Cancel(ctx, idOrRef)
	if err != nil {
		return nil, wrap("cancel booking", err)
	}
	s.publish(ctx, events.TopicBookingCancelled, events.BookingCancelled{Booking: b})
	return b, nil
}
