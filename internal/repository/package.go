package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

const packageColumns = `id, name, description, category, price, capacity, created_at`

// PackageRepository handles persistence for catalog packages.
type PackageRepository struct {
	db DB
}

// NewPackageRepository constructs a PackageRepository.
func NewPackageRepository(db DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// Create inserts a new package and returns it with a generated UUID.
func (r *PackageRepository) Create(ctx context.Context, req model.CreatePackageRequest) (*model.Package, error) {
	p := &model.Package{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Capacity:    req.Capacity,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO packages (`+packageColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.Capacity, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert package: %w", err)
	}
	return p, nil
}

// List returns the whole catalog, newest first. Filtering and ordering for
// display happen in the list pipeline.
func (r *PackageRepository) List(ctx context.Context) ([]model.Package, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+packageColumns+` FROM packages ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	pkgs, err := collect(rows, scanPackage)
	if err != nil {
		return nil, fmt.Errorf("scan package: %w", err)
	}
	return pkgs, nil
}

// GetByID returns a single package or ErrNotFound.
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*model.Package, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	p, err := scanPackage(r.db.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return &p, nil
}

func scanPackage(row pgx.Row) (model.Package, error) {
	var p model.Package
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Capacity, &p.CreatedAt)
	return p, err
}
