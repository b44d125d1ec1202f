package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// AddReview validates and stores a review of a package.
func (s *Service) AddReview(ctx context.Context, packageID string, req model.CreateReviewRequest) (*model.Review, error) {
	req.Author = strings.TrimSpace(req.Author)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validate(s.schemas.Review, req.Values()); err != nil {
		return nil, err
	}
	rv, err := s.reviews.Create(ctx, packageID, req)
	if err != nil {
		return nil, wrap("add review", err)
	}
	s.publish(ctx, events.TopicReviewCreated, events.ReviewCreated{Review: rv})
	return rv, nil
}

// ListReviews runs a package's reviews through the list pipeline.
func (s *Service) ListReviews(ctx context.Context, packageID string, q listing.Query) (listing.Page[model.Review], error) {
	reviews, err := s.reviews.ListByPackage(ctx, packageID)
	if err != nil {
		return listing.Page[model.Review]{}, wrap("list reviews", err)
	}
	return listing.Run(reviews, q, s.MissingPolicy()), nil
}
