package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// ReviewRepository handles persistence for package reviews.
type ReviewRepository struct {
	db DB
}

// NewReviewRepository constructs a ReviewRepository.
func NewReviewRepository(db DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a review. An unknown package yields ErrNotFound.
func (r *ReviewRepository) Create(ctx context.Context, packageID string, req model.CreateReviewRequest) (*model.Review, error) {
	if uuid.Validate(packageID) != nil {
		return nil, ErrNotFound
	}
	rv := &model.Review{
		ID:        uuid.New().String(),
		PackageID: packageID,
		Author:    req.Author,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO reviews (id, package_id, author, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rv.ID, rv.PackageID, rv.Author, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

// ListByPackage returns the reviews of one package, newest first.
func (r *ReviewRepository) ListByPackage(ctx context.Context, packageID string) ([]model.Review, error) {
	if uuid.Validate(packageID) != nil {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, package_id, author, rating, comment, created_at
		 FROM reviews WHERE package_id = $1
		 ORDER BY created_at DESC`,
		packageID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviews, err := collect(rows, func(row pgx.Row) (model.Review, error) {
		var rv model.Review
		err := row.Scan(&rv.ID, &rv.PackageID, &rv.Author, &rv.Rating, &rv.Comment, &rv.CreatedAt)
		return rv, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return reviews, nil
}
