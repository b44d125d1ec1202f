// Package listing implements the filter, sort and paginate pipeline shared by
// every list-bearing collection (packages, bookings, payments, reviews,
// recommendations). All stages are pure: they never mutate their input and
// tolerate missing fields without failing.
package listing

import (
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Item is anything that can be projected onto the canonical record shape.
type Item interface {
	Record() model.Record
}

// Predicate reports whether a record matches one criterion.
type Predicate func(model.Record) bool

// Criteria holds the active filters. Zero values mean "match all" for that
// dimension; pointer bounds distinguish "unset" from zero.
type Criteria struct {
	Status        string   `json:"status,omitempty"`
	PaymentStatus string   `json:"payment_status,omitempty"`
	Search        string   `json:"search,omitempty"`
	MinPrice      *float64 `json:"min_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	MinCapacity   *int     `json:"min_capacity,omitempty"`
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return len(c.Predicates()) == 0
}

// Equal compares two criteria by value.
func (c Criteria) Equal(o Criteria) bool {
	return strings.EqualFold(normEnum(c.Status), normEnum(o.Status)) &&
		strings.EqualFold(normEnum(c.PaymentStatus), normEnum(o.PaymentStatus)) &&
		strings.TrimSpace(c.Search) == strings.TrimSpace(o.Search) &&
		eqPtr(c.MinPrice, o.MinPrice) &&
		eqPtr(c.MaxPrice, o.MaxPrice) &&
		eqPtr(c.MinCapacity, o.MinCapacity)
}

// Predicates returns one predicate per active criterion.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if s := normEnum(c.Status); s != "" {
		preds = append(preds, StatusIs(s))
	}
	if s := normEnum(c.PaymentStatus); s != "" {
		preds = append(preds, PaymentStatusIs(s))
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		preds = append(preds, PriceBetween(c.MinPrice, c.MaxPrice))
	}
	if c.MinCapacity != nil {
		preds = append(preds, CapacityAtLeast(*c.MinCapacity))
	}
	if q := strings.TrimSpace(c.Search); q != "" {
		preds = append(preds, Matches(q))
	}
	return preds
}

// StatusIs matches records whose status equals s, ignoring case.
// Records without a status never match.
func StatusIs(s string) Predicate {
	return func(r model.Record) bool {
		return r.Status != "" && strings.EqualFold(strings.TrimSpace(r.Status), s)
	}
}

// PaymentStatusIs matches on the payment status field.
func PaymentStatusIs(s string) Predicate {
	return func(r model.Record) bool {
		return r.PaymentStatus != "" && strings.EqualFold(strings.TrimSpace(r.PaymentStatus), s)
	}
}

// PriceBetween matches amounts inside the inclusive range [min, max]. A nil
// bound is unbounded on that side. Records without an amount never match.
func PriceBetween(min, max *float64) Predicate {
	return func(r model.Record) bool {
		if r.Amount == nil {
			return false
		}
		if min != nil && *r.Amount < *min {
			return false
		}
		if max != nil && *r.Amount > *max {
			return false
		}
		return true
	}
}

// CapacityAtLeast matches records whose capacity is >= n.
func CapacityAtLeast(n int) Predicate {
	return func(r model.Record) bool {
		return r.Capacity != nil && *r.Capacity >= n
	}
}

// Matches is a case-insensitive substring search over name, description and
// category; any one field containing the query is a match.
func Matches(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(r model.Record) bool {
		for _, field := range [...]string{r.Name, r.Description, r.Category} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
}

// Filter returns the items matching every active criterion, in input order.
// The input slice is never modified.
func Filter[T Item](items []T, c Criteria) []T {
	return FilterWith(items, c.Predicates()...)
}

// FilterWith ANDs the given predicates over items.
func FilterWith[T Item](items []T, preds ...Predicate) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchAll(it.Record(), preds) {
			out = append(out, it)
		}
	}
	return out
}

func matchAll(r model.Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// normEnum trims an enum-like filter value; "all" is the UI's "no filter".
func normEnum(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

func eqPtr[N comparable](a, b *N) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
