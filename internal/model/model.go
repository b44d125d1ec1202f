// Package model defines the core domain types for the event planning system.
package model

import (
	"strconv"
	"time"
)

// DateLayout is the wire format for calendar dates (event dates).
const DateLayout = "2006-01-02"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// PaymentStatus tracks how much of a booking has been paid.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Package is a bookable event package offered by the business.
type Package struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record projects the package into the canonical list shape.
func (p Package) Record() Record {
	return Record{
		ID:          p.ID,
		Kind:        KindPackage,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Amount:      Float(p.Price),
		Capacity:    Int(p.Capacity),
		Timestamp:   Time(p.CreatedAt),
	}
}

// Booking is a customer's reservation of a package for an event date.
type Booking struct {
	ID            string        `json:"id"`
	Reference     string        `json:"reference"`
	PackageID     string        `json:"package_id"`
	PackageName   string        `json:"package_name"`
	CustomerName  string        `json:"customer_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	EventDate     time.Time     `json:"event_date"`
	Guests        int           `json:"guests"`
	Notes         string        `json:"notes,omitempty"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TotalPrice    float64       `json:"total_price"`
	AmountPaid    float64       `json:"amount_paid"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Outstanding returns the amount still owed on the booking.
func (b *Booking) Outstanding() float64 {
	if rest := b.TotalPrice - b.AmountPaid; rest > 0 {
		return rest
	}
	return 0
}

// IsCancelled returns true once the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelled
}

func (b Booking) Record() Record {
	return Record{
		ID:            b.ID,
		Kind:          KindBooking,
		Name:          b.PackageName,
		Description:   b.CustomerName + " " + b.Email + " " + b.Reference,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		Amount:        Float(b.TotalPrice),
		Capacity:      Int(b.Guests),
		Timestamp:     Time(b.CreatedAt),
	}
}

// Payment is a single payment made against a booking.
type Payment struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	CustomerName     string    `json:"customer_name"`
	Amount           float64   `json:"amount"`
	Method           string    `json:"method"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func (p Payment) Record() Record {
	return Record{
		ID:            p.ID,
		Kind:          KindPayment,
		Name:          p.BookingReference,
		Description:   p.CustomerName,
		Category:      p.Method,
		Status:        p.Status,
		PaymentStatus: p.Status,
		Amount:        Float(p.Amount),
		Timestamp:     Time(p.CreatedAt),
	}
}

// Review is a customer's rating of a package.
type Review struct {
	ID        string    `json:"id"`
	PackageID string    `json:"package_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Record maps the rating onto Score in [0,1].
func (r Review) Record() Record {
	return Record{
		ID:          r.ID,
		Kind:        KindReview,
		Name:        r.Author,
		Description: r.Comment,
		Score:       Float(float64(r.Rating) / 5),
		Timestamp:   Time(r.CreatedAt),
	}
}

// Inquiry is a message sent through the contact form.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// RecommendationRequest is what a customer submits through the recommendation form.
type RecommendationRequest struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	EventType   string    `json:"event_type"`
	Guests      int       `json:"guests"`
	Budget      float64   `json:"budget"`
	EventDate   time.Time `json:"event_date"`
	Preferences string    `json:"preferences,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recommendation is a package scored against a recommendation request.
type Recommendation struct {
	Package
	Score float64 `json:"match_score"`
}

func (r Recommendation) Record() Record {
	rec := r.Package.Record()
	rec.Kind = KindRecommendation
	rec.Score = Float(r.Score)
	return rec
}

// ─── Request payloads ─────────────────────────────────────────────────────────

// CreatePackageRequest is the payload for adding a package to the catalog.
type CreatePackageRequest struct {
	Name        string  `json:"name" toml:"name"`
	Description string  `json:"description" toml:"description"`
	Category    string  `json:"category" toml:"category"`
	Price       float64 `json:"price" toml:"price"`
	Capacity    int     `json:"capacity" toml:"capacity"`
}

// Values flattens the request into form values for validation.
func (r CreatePackageRequest) Values() map[string]string {
	return map[string]string{
		"name":        r.Name,
		"description": r.Description,
		"category":    r.Category,
		"price":       formatFloat(r.Price),
		"capacity":    strconv.Itoa(r.Capacity),
	}
}

// CreateBookingRequest is the event submission form.
type CreateBookingRequest struct {
	PackageID    string `json:"package_id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	EventDate    string `json:"event_date"`
	Guests       int    `json:"guests"`
	Notes        string `json:"notes"`
}

func (r CreateBookingRequest) Values() map[string]string {
	return map[string]string{
		"package_id":    r.PackageID,
		"customer_name": r.CustomerName,
		"email":         r.Email,
		"phone":         r.Phone,
		"event_date":    r.EventDate,
		"guests":        strconv.Itoa(r.Guests),
		"notes":         r.Notes,
	}
}

// CreatePaymentRequest records a payment against a booking.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

func (r CreatePaymentRequest) Values() map[string]string {
	return map[string]string{
		"amount": formatFloat(r.Amount),
		"method": r.Method,
	}
}

// CreateReviewRequest is the review form for a package.
type CreateReviewRequest struct {
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (r CreateReviewRequest) Values() map[string]string {
	return map[string]string{
		"author":  r.Author,
		"rating":  strconv.Itoa(r.Rating),
		"comment": r.Comment,
	}
}

// ContactRequest is the contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (r ContactRequest) Values() map[string]string {
	return map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"phone":   r.Phone,
		"message": r.Message,
	}
}

// RecommendRequest is the recommendation form payload.
type RecommendRequest struct {
	Email       string  `json:"email"`
	EventType   string  `json:"event_type"`
	Guests      int     `json:"guests"`
	Budget      float64 `json:"budget"`
	EventDate   string  `json:"event_date"`
	Preferences string  `json:"preferences"`
}

func (r RecommendRequest) Values() map[string]string {
	return map[string]string{
		"email":       r.Email,
		"event_type":  r.EventType,
		"guests":      strconv.Itoa(r.Guests),
		"budget":      formatFloat(r.Budget),
		"event_date":  r.EventDate,
		"preferences": r.Preferences,
	}
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
