package model

import "time"

// Kind names the entity a Record was projected from.
type Kind string

const (
	KindPackage        Kind = "package"
	KindBooking        Kind = "booking"
	KindPayment        Kind = "payment"
	KindReview         Kind = "review"
	KindRecommendation Kind = "recommendation"
)

// Record is the canonical shape every list-bearing collection is normalized to
// before filtering and sorting. A nil pointer or empty string means the field
// was missing upstream.
type Record struct {
	ID            string     `json:"id"`
	Kind          Kind       `json:"kind"`
	Name          string     `json:"name,omitempty"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category,omitempty"`
	Status        string     `json:"status,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Capacity      *int       `json:"capacity,omitempty"`
	Score         *float64   `json:"score,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}

// Record lets a bare Record flow through the same pipeline as the entities.
func (r Record) Record() Record { return r }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Time returns a pointer to t, or nil for the zero time.
func Time(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
