package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/recommend"
)

// Contact validates and stores a contact-form message.
func (s *Service) Contact(ctx context.Context, req model.ContactRequest) (*model.Inquiry, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)
	if err := validate(s.schemas.Contact, req.Values()); err != nil {
		return nil, err
	}
	in, err := s.inquiries.CreateInquiry(ctx, req)
	if err != nil {
		return nil, wrap("store inquiry", err)
	}
	s.publish(ctx, events.TopicInquiryReceived, events.InquiryReceived{Inquiry: in})
	return in, nil
}

// Recommend stores a recommendation request and returns the catalog scored
// against it. Unless the query says otherwise, packages too small for the
// guests or above the budget are left out.
func (s *Service) Recommend(ctx context.Context, req model.RecommendRequest, q listing.Query) (*model.RecommendationRequest, listing.Page[model.Recommendation], error) {
	var empty listing.Page[model.Recommendation]
	req.Email = strings.TrimSpace(req.Email)
	req.EventType = strings.TrimSpace(req.EventType)
	if err := validate(s.schemas.Recommendation, req.Values()); err != nil {
		return nil, empty, err
	}
	date, err := parseDate("event_date", req.EventDate)
	if err != nil {
		return nil, empty, err
	}

	rr := model.RecommendationRequest{
		Email:       req.Email,
		EventType:   req.EventType,
		Guests:      req.Guests,
		Budget:      req.Budget,
		EventDate:   date,
		Preferences: strings.TrimSpace(req.Preferences),
	}

	var (
		stored *model.RecommendationRequest
		pkgs   []model.Package
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stored, err = s.inquiries.CreateRecommendationRequest(gctx, rr)
		if err != nil {
			return fmt.Errorf("store recommendation request: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pkgs, err = s.Catalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, empty, err
	}

	if q.Criteria.MinCapacity == nil {
		q.Criteria.MinCapacity = &rr.Guests
	}
	if q.Criteria.MaxPrice == nil {
		q.Criteria.MaxPrice = &rr.Budget
	}
	page := listing.Run(recommend.Rank(*stored, pkgs), q, s.MissingPolicy())
	s.publish(ctx, events.TopicRecommendation, events.RecommendationRequested{Request: stored})
	return stored, page, nil
}
