package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/receipt"
)

// RecordPayment validates and stores a payment against a booking.
func (s *Service) RecordPayment(ctx context.Context, bookingID string, req model.CreatePaymentRequest) (*model.Payment, error) {
	req.Method = strings.ToLower(strings.TrimSpace(req.Method))
	if err := validate(s.schemas.Payment, req.Values()); err != nil {
		return nil, err
	}
	p, err := s.payments.Record(ctx, bookingID, req)
	if err != nil {
		return nil, wrap("record payment", err)
	}
	s.publish(ctx, events.TopicPaymentRecorded, events.PaymentRecorded{Payment: p})
	return p, nil
}

// ListPayments runs payment history through the list pipeline. A non-empty
// bookingID scopes it to one booking.
func (s *Service) ListPayments(ctx context.Context, bookingID string, q listing.Query) (listing.Page[model.Payment], error) {
	payments, err := s.payments.List(ctx, bookingID)
	if err != nil {
		return listing.Page[model.Payment]{}, wrap("list payments", err)
	}
	return listing.Run(payments, q, s.MissingPolicy()), nil
}

// Receipt renders the PDF receipt of a payment.
func (s *Service) Receipt(ctx context.Context, paymentID string) ([]byte, string, error) {
	p, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, "", wrap("get payment", err)
	}
	b, err := s.bookings.Get(ctx, p.BookingID)
	if err != nil {
		return nil, "", wrap("get booking", err)
	}
	return receipt.Build(p, b)
}
