package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/event-planner/internal/export"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// ErrExportDisabled is returned when no uploader is configured.
var ErrExportDisabled = errors.New("export is not configured")

// ExportResult describes an uploaded export.
type ExportResult struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Count      int    `json:"count"`
}

// Export filters and sorts a whole collection (no paging) and uploads it as
// JSONL. Supported collections are packages, bookings and payments.
func (s *Service) Export(ctx context.Context, collection string, q listing.Query) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}
	meta := export.Meta{Collection: collection, Criteria: q.Criteria, Sort: q.Sort, At: s.now()}

	var (
		buf   bytes.Buffer
		count int
		err   error
	)
	switch collection {
	case "packages":
		var pkgs []model.Package
		if pkgs, err = s.Catalog(ctx); err == nil {
			count, err = writeOrdered(&buf, meta, pkgs, s.MissingPolicy())
		}
	case "bookings":
		var bookings []model.Booking
		if bookings, err = s.bookings.List(ctx, ""); err == nil {
			count, err = writeOrdered(&buf, meta, bookings, s.MissingPolicy())
		}
	case "payments":
		var payments []model.Payment
		if payments, err = s.payments.List(ctx, ""); err == nil {
			count, err = writeOrdered(&buf, meta, payments, s.MissingPolicy())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", collection, err)
	}

	key, err := s.uploader.Upload(ctx, collection, meta.At, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", collection, err)
	}
	return &ExportResult{Collection: collection, Key: key, Count: count}, nil
}

func writeOrdered[T listing.Item](buf *bytes.Buffer, meta export.Meta, items []T, policy listing.MissingPolicy) (int, error) {
	ordered := listing.Ordered(items, meta.Criteria, meta.Sort, policy)
	return len(ordered), export.WriteJSONL(buf, meta, ordered)
}
