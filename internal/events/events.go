// Package events publishes planner domain events to NATS.
package events

import (
	"context"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Event topic constants
const (
	TopicPackageCreated   = "planner.package.created"
	TopicReviewCreated    = "planner.review.created"
	TopicBookingCreated   = "planner.booking.created"
	TopicBookingCancelled = "planner.booking.cancelled"
	TopicPaymentRecorded  = "planner.payment.recorded"
	TopicInquiryReceived  = "planner.inquiry.received"
	TopicRecommendation   = "planner.recommendation.requested"

	// Wildcards for subscribers.
	TopicAll      = "planner.>"
	TopicPackages = "planner.package.>"
	TopicReviews  = "planner.review.>"
)

// Event types

type PackageCreated struct {
	Package *model.Package `json:"package"`
}

type ReviewCreated struct {
	Review *model.Review `json:"review"`
}

type BookingCreated struct {
	Booking *model.Booking `json:"booking"`
}

type BookingCancelled struct {
	Booking *model.Booking `json:"booking"`
}

type PaymentRecorded struct {
	Payment *model.Payment `json:"payment"`
}

type InquiryReceived struct {
	Inquiry *model.Inquiry `json:"inquiry"`
}

type RecommendationRequested struct {
	Request *model.RecommendationRequest `json:"request"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}

// NoopPublisher is a Publisher that does nothing (used when NATS is not configured).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
