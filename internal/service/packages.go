package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/events"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/loader"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// CreatePackage validates the request, stores it and refreshes the catalog.
func (s *Service) CreatePackage(ctx context.Context, req model.CreatePackageRequest) (*model.Package, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	if err := validate(s.schemas.Package, req.Values()); err != nil {
		return nil, err
	}
	p, err := s.packages.Create(ctx, req)
	if err != nil {
		return nil, wrap("create package", err)
	}
	s.RefreshCatalog(ctx)
	s.publish(ctx, events.TopicPackageCreated, events.PackageCreated{Package: p})
	return p, nil
}

// GetPackage returns a single package by ID.
func (s *Service) GetPackage(ctx context.Context, id string) (*model.Package, error) {
	p, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("get package", err)
	}
	return p, nil
}

// ListPackages runs the catalog through the list pipeline.
func (s *Service) ListPackages(ctx context.Context, q listing.Query) (listing.Page[model.Package], error) {
	pkgs, err := s.Catalog(ctx)
	if err != nil {
		return listing.Page[model.Package]{}, err
	}
	return listing.Run(pkgs, q, s.MissingPolicy()), nil
}

// Catalog returns the cached package list, loading it on first use or after
// a failed refresh.
func (s *Service) Catalog(ctx context.Context) ([]model.Package, error) {
	if !s.catalog.LoadedAt().IsZero() && s.catalog.Err() == nil {
		return s.catalog.Items(), nil
	}
	err := s.catalog.Refresh(ctx)
	switch {
	case err == nil:
		return s.catalog.Items(), nil
	case errors.Is(err, loader.ErrSuperseded):
		// A newer refresh owns the cache; read straight through.
		pkgs, err := s.packages.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list packages: %w", err)
		}
		return pkgs, nil
	default:
		return nil, fmt.Errorf("load catalog: %w", err)
	}
}

// RefreshCatalog reloads the catalog cache. Failures are logged by the cache.
func (s *Service) RefreshCatalog(ctx context.Context) {
	_ = s.catalog.Refresh(context.WithoutCancel(ctx))
}

// WatchCatalog refreshes the catalog whenever another instance publishes a
// package event. It returns when ctx is done or the subscription closes.
func (s *Service) WatchCatalog(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe(events.TopicPackages)
	if err != nil {
		return err
	}
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			slog.Debug("package event received, refreshing catalog")
			s.RefreshCatalog(ctx)
		}
	}
}
