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

const paymentSelect = `SELECT pay.id, pay.booking_id, b.reference, b.customer_name,
	pay.amount, pay.method, pay.status, pay.created_at
	FROM payments pay JOIN bookings b ON b.id = pay.booking_id`

// PaymentRepository handles persistence for payments.
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Record stores a payment against a booking and moves the booking's payment
// status to partial or paid. The first payment confirms a pending booking.
// The booking row is locked so concurrent payments cannot both pass the
// outstanding-amount check.
func (r *PaymentRepository) Record(ctx context.Context, bookingID string, req model.CreatePaymentRequest) (p *model.Payment, err error) {
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
		b      model.Booking
		status string
	)
	err = tx.QueryRow(ctx,
		`SELECT id, reference, customer_name, status, total_price, amount_paid
		 FROM bookings WHERE id::text = $1 OR reference = upper($1)
		 FOR UPDATE`,
		bookingID,
	).Scan(&b.ID, &b.Reference, &b.CustomerName, &status, &b.TotalPrice, &b.AmountPaid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking row: %w", err)
	}
	b.Status = model.BookingStatus(status)
	if b.IsCancelled() {
		return nil, ErrBookingClosed
	}
	if req.Amount > b.Outstanding()+0.005 {
		return nil, ErrOverpayment
	}

	b.AmountPaid += req.Amount
	paid := model.PaymentPartial
	if b.Outstanding() < 0.005 {
		paid = model.PaymentPaid
	}
	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`UPDATE bookings
		 SET amount_paid = $2, payment_status = $3, status = $4, updated_at = $5
		 WHERE id = $1`,
		b.ID, b.AmountPaid, string(paid), string(model.BookingConfirmed), now,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking balance: %w", err)
	}

	p = &model.Payment{
		ID:               uuid.New().String(),
		BookingID:        b.ID,
		BookingReference: b.Reference,
		CustomerName:     b.CustomerName,
		Amount:           req.Amount,
		Method:           req.Method,
		Status:           string(paid),
		CreatedAt:        now,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO payments (id, booking_id, amount, method, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.BookingID, p.Amount, p.Method, p.Status, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return p, nil
}

// Get returns a single payment or ErrNotFound.
func (r *PaymentRepository) Get(ctx context.Context, id string) (*model.Payment, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	p, err := scanPayment(r.db.QueryRow(ctx, paymentSelect+` WHERE pay.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// List returns payment history, newest first. A non-empty bookingID limits
// the result to that booking.
func (r *PaymentRepository) List(ctx context.Context, bookingID string) ([]model.Payment, error) {
	rows, err := r.db.Query(ctx,
		paymentSelect+` WHERE $1 = '' OR pay.booking_id::text = $1 OR b.reference = upper($1)
		 ORDER BY pay.created_at DESC`,
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	payments, err := collect(rows, scanPayment)
	if err != nil {
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.BookingReference, &p.CustomerName,
		&p.Amount, &p.Method, &p.Status, &p.CreatedAt)
	return p, err
}
