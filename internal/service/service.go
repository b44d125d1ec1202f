// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/config"
	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/form"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/loader"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// ErrUnknownCollection is returned for a collection name the planner does not serve.
var ErrUnknownCollection = errors.New("unknown collection")

// PackageStore persists catalog packages.
type PackageStore interface {
	Create(ctx context.Context, req model.CreatePackageRequest) (*model.Package, error)
	List(ctx context.Context) ([]model.Package, error)
	GetByID(ctx context.Context, id string) (*model.Package, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	Book(ctx context.Context, req model.CreateBookingRequest, eventDate time.Time) (*model.Booking, error)
	Get(ctx context.Context, idOrRef string) (*model.Booking, error)
	List(ctx context.Context, email string) ([]model.Booking, error)
	Cancel(ctx context.Context, idOrRef string) (*model.Booking, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	Record(ctx context.Context, bookingID string, req model.CreatePaymentRequest) (*model.Payment, error)
	Get(ctx context.Context, id string) (*model.Payment, error)
	List(ctx context.Context, bookingID string) ([]model.Payment, error)
}

// ReviewStore persists package reviews.
type ReviewStore interface {
	Create(ctx context.Context, packageID string, req model.CreateReviewRequest) (*model.Review, error)
	ListByPackage(ctx context.Context, packageID string) ([]model.Review, error)
}

// InquiryStore persists contact messages and recommendation requests.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, req model.ContactRequest) (*model.Inquiry, error)
	CreateRecommendationRequest(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationRequest, error)
}

// Uploader stores export files. A nil Uploader disables exports.
type Uploader interface {
	Upload(ctx context.Context, collection string, at time.Time, data []byte) (string, error)
}

// Deps lists everything a Service needs. Publisher and Uploader are optional.
type Deps struct {
	Packages  PackageStore
	Bookings  BookingStore
	Payments  PaymentStore
	Reviews   ReviewStore
	Inquiries InquiryStore
	Publisher events.Publisher
	Uploader  Uploader
	Listing   config.ListingConfig
	Now       func() time.Time
}

// Service orchestrates every planner operation.
type Service struct {
	packages  PackageStore
	bookings  BookingStore
	payments  PaymentStore
	reviews   ReviewStore
	inquiries InquiryStore
	publisher events.Publisher
	uploader  Uploader
	listing   config.ListingConfig
	schemas   form.Schemas
	now       func() time.Time

	catalog *loader.Collection[model.Package]
}

// New constructs a Service with its dependencies.
func New(d Deps) *Service {
	if d.Publisher == nil {
		d.Publisher = &events.NoopPublisher{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Listing.DefaultPageSize < 1 {
		d.Listing.DefaultPageSize = listing.DefaultPageSize
	}
	s := &Service{
		packages:  d.Packages,
		bookings:  d.Bookings,
		payments:  d.Payments,
		reviews:   d.Reviews,
		inquiries: d.Inquiries,
		publisher: d.Publisher,
		uploader:  d.Uploader,
		listing:   d.Listing,
		schemas:   form.NewSchemas(d.Now),
		now:       d.Now,
	}
	s.catalog = loader.New[model.Package]("packages", d.Packages.List)
	return s
}

// Close stops the catalog cache.
func (s *Service) Close() {
	s.catalog.Close()
}

// Defaults returns the list defaults for a collection: its default sort
// plus the configured page sizes.
func (s *Service) Defaults(kind model.Kind) listing.Defaults {
	return s.listing.Defaults(listing.DefaultSort(kind))
}

// Query returns the default list query for a collection: no criteria, the
// collection's default sort, first page.
func (s *Service) Query(kind model.Kind) listing.Query {
	return listing.ParseQuery(nil, s.Defaults(kind))
}

// MissingPolicy is the configured placement of records without a price.
func (s *Service) MissingPolicy() listing.MissingPolicy {
	return s.listing.MissingPolicy()
}

// validate runs schema against values. It returns nil or a *model.ValidationError.
func validate(schema form.Schema, values map[string]string) error {
	if ve := schema.Validate(values); ve != nil {
		return ve
	}
	return nil
}

// parseDate parses a validated calendar date.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(value))
	if err != nil {
		ve := &model.ValidationError{}
		ve.Add(field, "must be a date in YYYY-MM-DD format")
		return time.Time{}, ve
	}
	return t, nil
}

// publish emits an event. Failures are logged, never returned: the write
// has already committed.
func (s *Service) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("publish event failed", "topic", topic, "error", err)
	}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
