package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// InquiryRepository stores contact-form messages and recommendation requests.
type InquiryRepository struct {
	db DB
}

// NewInquiryRepository constructs an InquiryRepository.
func NewInquiryRepository(db DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// CreateInquiry stores a contact-form message.
func (r *InquiryRepository) CreateInquiry(ctx context.Context, req model.ContactRequest) (*model.Inquiry, error) {
	in := &model.Inquiry{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO inquiries (id, name, email, phone, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		in.ID, in.Name, in.Email, in.Phone, in.Message, in.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}
	return in, nil
}

// CreateRecommendationRequest stores a recommendation form submission.
func (r *InquiryRepository) CreateRecommendationRequest(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationRequest, error) {
	req.ID = uuid.New().String()
	req.CreatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx,
		`INSERT INTO recommendation_requests
		 (id, email, event_type, guests, budget, event_date, preferences, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		req.ID, req.Email, req.EventType, req.Guests, req.Budget, req.EventDate, req.Preferences, req.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recommendation request: %w", err)
	}
	return &req, nil
}
