package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/repository"
)

type fakePackages struct {
	mu    sync.Mutex
	items []model.Package
	lists int
	err   error
}

func (f *fakePackages) Create(ctx context.Context, req model.CreatePackageRequest) (*model.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := model.Package{
		ID: "pkg-" + req.Name, Name: req.Name, Description: req.Description, Category: req.Category,
		Price: req.Price, Capacity: req.Capacity, CreatedAt: time.Now(),
	}
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakePackages) List(ctx context.Context) ([]model.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Package(nil), f.items...), nil
}

func (f *fakePackages) GetByID(ctx context.Context, id string) (*model.Package, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeBookings struct {
	items []model.Booking
	last  time.Time
}

func (f *fakeBookings) Book(ctx context.Context, req model.CreateBookingRequest, date time.Time) (*model.Booking, error) {
	f.last = date
	b := model.Booking{ID: "b-new", Reference: "EVT-NEW23456", PackageID: req.PackageID, Email: req.Email,
		Guests: req.Guests, EventDate: date, Status: model.BookingPending, PaymentStatus: model.PaymentUnpaid}
	f.items = append(f.items, b)
	return &b, nil
}

func (f *fakeBookings) Get(ctx context.Context, idOrRef string) (*model.Booking, error) {
	for _, b := range f.items {
		if b.ID == idOrRef || b.Reference == idOrRef {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookings) List(ctx context.Context, email string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.items {
		if email == "" || strings.EqualFold(b.Email, email) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) Cancel(ctx context.Context, idOrRef string) (*model.Booking, error) {
	for i, b := range f.items {
		if b.ID == idOrRef || b.Reference == idOrRef {
			if b.IsCancelled() {
				return nil, repository.ErrBookingClosed
			}
			f.items[i].Status = model.BookingCancelled
			return &f.items[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePayments struct {
	items []model.Payment
}

func (f *fakePayments) Record(ctx context.Context, bookingID string, req model.CreatePaymentRequest) (*model.Payment, error) {
	p := model.Payment{ID: "pay-1", BookingID: bookingID, Amount: req.Amount, Method: req.Method, Status: "partial", CreatedAt: time.Now()}
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakePayments) Get(ctx context.Context, id string) (*model.Payment, error) {
	for _, p := range f.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePayments) List(ctx context.Context, bookingID string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.items {
		if bookingID == "" || p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeReviews struct {
	items []model.Review
}

func (f *fakeReviews) Create(ctx context.Context, packageID string, req model.CreateReviewRequest) (*model.Review, error) {
	rv := model.Review{ID: "rv-1", PackageID: packageID, Author: req.Author, Rating: req.Rating, Comment: req.Comment, CreatedAt: time.Now()}
	f.items = append(f.items, rv)
	return &rv, nil
}

func (f *fakeReviews) ListByPackage(ctx context.Context, packageID string) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range f.items {
		if rv.PackageID == packageID {
			out = append(out, rv)
		}
	}
	return out, nil
}

type fakeInquiries struct {
	mu       sync.Mutex
	contacts []model.ContactRequest
	requests []model.RecommendationRequest
}

func (f *fakeInquiries) CreateInquiry(ctx context.Context, req model.ContactRequest) (*model.Inquiry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, req)
	return &model.Inquiry{ID: "inq-1", Name: req.Name, Email: req.Email, Message: req.Message}, nil
}

func (f *fakeInquiries) CreateRecommendationRequest(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = "rr-1"
	f.requests = append(f.requests, req)
	return &req, nil
}

type fakeUploader struct {
	collection string
	data       []byte
}

func (f *fakeUploader) Upload(ctx context.Context, collection string, at time.Time, data []byte) (string, error) {
	f.collection = collection
	f.data = data
	return "exports/" + collection + ".jsonl", nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
