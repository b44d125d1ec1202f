package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// ReferenceAlphabet omits characters that are easy to misread over the phone.
const ReferenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ReferenceLength is the number of random characters after the "EVT-" prefix.
const ReferenceLength = 8

// newReference returns a short booking reference such as EVT-7K3QX9MA.
var newReference = func() (string, error) {
	id, err := nanoid.Generate(ReferenceAlphabet, ReferenceLength)
	if err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}
	return "EVT-" + id, nil
}

const bookingSelect = `SELECT b.id, b.reference, b.package_id, p.name, b.customer_name, b.email,
	b.phone, b.event_date, b.guests, b.notes, b.status, b.payment_status,
	b.total_price, b.amount_paid, b.created_at, b.updated_at
	FROM bookings b JOIN packages p ON p.id = b.package_id`

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Book reserves a package for an event date inside a transaction.
//
// Two concurrent requests for the last free seats of the same package and
// date would both see enough room with a plain read-then-insert. Locking the
// package row with SELECT … FOR UPDATE serialises bookings per package, so
// the capacity sum below is always read after any competing insert commits.
func (r *BookingRepository) Book(ctx context.Context, req model.CreateBookingRequest, eventDate time.Time) (b *model.Booking, err error) {
	if uuid.Validate(req.PackageID) != nil {
		return nil, ErrNotFound
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var (
		name     string
		price    float64
		capacity int
	)
	err = tx.QueryRow(ctx,
		`SELECT name, price, capacity FROM packages WHERE id = $1 FOR UPDATE`,
		req.PackageID,
	).Scan(&name, &price, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock package row: %w", err)
	}

	var booked int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(guests), 0) FROM bookings
		 WHERE package_id = $1 AND event_date = $2 AND status <> 'cancelled'`,
		req.PackageID, eventDate,
	).Scan(&booked)
	if err != nil {
		return nil, fmt.Errorf("sum booked guests: %w", err)
	}
	if booked+req.Guests > capacity {
		return nil, ErrFullyBooked
	}

	ref, err := newReference()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	b = &model.Booking{
		ID:            uuid.New().String(),
		Reference:     ref,
		PackageID:     req.PackageID,
		PackageName:   name,
		CustomerName:  req.CustomerName,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		EventDate:     eventDate,
		Guests:        req.Guests,
		Notes:         req.Notes,
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentUnpaid,
		TotalPrice:    price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, reference, package_id, customer_name, email, phone,
		 event_date, guests, notes, status, payment_status, total_price, amount_paid,
		 created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.ID, b.Reference, b.PackageID, b.CustomerName, b.Email, b.Phone,
		b.EventDate, b.Guests, b.Notes, string(b.Status), string(b.PaymentStatus), b.TotalPrice, b.AmountPaid,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return b, nil
}

// Get returns a booking by ID or reference code, or ErrNotFound.
func (r *BookingRepository) Get(ctx context.Context, idOrRef string) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		bookingSelect+` WHERE b.id::text = $1 OR b.reference = upper($1)`, idOrRef,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// List returns bookings, newest first. A non-empty email limits the result to
// that customer's bookings.
func (r *BookingRepository) List(ctx context.Context, email string) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		bookingSelect+` WHERE $1 = '' OR lower(b.email) = lower($1) ORDER BY b.created_at DESC`,
		strings.TrimSpace(email),
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings, err := collect(rows, scanBooking)
	if err != nil {
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return bookings, nil
}

// Cancel marks a booking cancelled, releasing its guests from the date's
// capacity. Cancelling twice returns ErrBookingClosed.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled', updated_at = $2
		 WHERE (id::text = $1 OR reference = upper($1)) AND status <> 'cancelled'`,
		id, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	b, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBookingClosed
	}
	return b, nil
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var (
		b             model.Booking
		status, payed string
	)
	err := row.Scan(&b.ID, &b.Reference, &b.PackageID, &b.PackageName, &b.CustomerName, &b.Email,
		&b.Phone, &b.EventDate, &b.Guests, &b.Notes, &status, &payed,
		&b.TotalPrice, &b.AmountPaid, &b.CreatedAt, &b.UpdatedAt)
	b.Status = model.BookingStatus(status)
	b.PaymentStatus = model.PaymentStatus(payed)
	return b, err
}
