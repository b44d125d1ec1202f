// Package normalize maps raw upstream JSON objects onto model.Record.
//
// The upstream API is inconsistent about key names (booking_status vs status,
// a nested package.price vs a flat package_price, ...). Every alternative is
// resolved here, once per fetched collection, so the list pipeline only ever
// sees the canonical shape.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Raw is one decoded JSON object.
type Raw = map[string]any

// fieldKeys lists the candidate key paths per canonical field, most specific
// first. A dotted path descends into nested objects.
type fieldKeys struct {
	id, name, description, category  []string
	status, paymentStatus            []string
	amount, capacity, score, created []string
}

var keysByKind = map[model.Kind]fieldKeys{
	model.KindPackage: {
		id:          []string{"id", "package_id", "_id"},
		name:        []string{"name", "package_name", "title"},
		description: []string{"description", "details", "summary"},
		category:    []string{"category", "event_type", "type"},
		status:      []string{"status", "availability"},
		amount:      []string{"price", "package_price", "base_price", "amount"},
		capacity:    []string{"capacity", "max_guests", "guest_capacity"},
		score:       []string{"match_score", "score", "relevance"},
		created:     []string{"created_at", "updated_at", "createdAt"},
	},
	model.KindBooking: {
		id:            []string{"id", "booking_id", "_id"},
		name:          []string{"package.name", "package_name", "event_name", "name"},
		description:   []string{"customer_name", "reference", "notes", "description"},
		category:      []string{"package.category", "event_type", "category"},
		status:        []string{"booking_status", "status"},
		paymentStatus: []string{"payment_status", "payment.status", "paymentStatus"},
		amount:        []string{"package.price", "package_price", "total_price", "total_amount", "price", "amount"},
		capacity:      []string{"guests", "guest_count", "number_of_guests", "attendees"},
		created:       []string{"created_at", "booking_date", "updated_at", "createdAt"},
	},
	model.KindPayment: {
		id:            []string{"id", "payment_id", "transaction_id", "_id"},
		name:          []string{"booking_reference", "booking.reference", "reference", "booking_id"},
		description:   []string{"customer_name", "booking.customer_name", "description"},
		category:      []string{"method", "payment_method", "provider"},
		status:        []string{"payment_status", "status"},
		paymentStatus: []string{"payment_status", "status"},
		amount:        []string{"amount", "amount_paid", "total"},
		created:       []string{"created_at", "paid_at", "payment_date", "updated_at"},
	},
	model.KindReview: {
		id:          []string{"id", "review_id", "_id"},
		name:        []string{"author", "user_name", "name"},
		description: []string{"comment", "review", "text"},
		category:    []string{"package.name", "package_name"},
		created:     []string{"created_at", "date", "updated_at"},
	},
	model.KindRecommendation: {
		id:          []string{"id", "package_id", "_id"},
		name:        []string{"name", "package_name", "title"},
		description: []string{"description", "details"},
		category:    []string{"category", "event_type", "type"},
		amount:      []string{"price", "package_price", "amount"},
		capacity:    []string{"capacity", "max_guests"},
		score:       []string{"match_score", "score", "relevance"},
		created:     []string{"created_at", "updated_at"},
	},
}

// Record normalizes one raw object of the given kind.
func Record(kind model.Kind, raw Raw) (model.Record, error) {
	keys, ok := keysByKind[kind]
	if !ok {
		return model.Record{}, fmt.Errorf("normalize: unknown kind %q", kind)
	}
	r := model.Record{
		ID:            lookupString(raw, keys.id),
		Kind:          kind,
		Name:          lookupString(raw, keys.name),
		Description:   lookupString(raw, keys.description),
		Category:      lookupString(raw, keys.category),
		Status:        lookupString(raw, keys.status),
		PaymentStatus: lookupString(raw, keys.paymentStatus),
		Amount:        lookupFloat(raw, keys.amount),
		Score:         lookupFloat(raw, keys.score),
		Timestamp:     lookupTime(raw, keys.created),
	}
	if c := lookupFloat(raw, keys.capacity); c != nil && *c >= math.MinInt && *c < math.MaxInt {
		r.Capacity = model.Int(int(*c))
	}
	if kind == model.KindReview {
		// Ratings arrive on a 1-5 scale.
		if rating := lookupFloat(raw, []string{"rating", "stars"}); rating != nil {
			r.Score = model.Float(*rating / 5)
		}
	}
	return r, nil
}

// Collection normalizes a whole fetched collection.
func Collection(kind model.Kind, raws []Raw) ([]model.Record, error) {
	out := make([]model.Record, 0, len(raws))
	for _, raw := range raws {
		r, err := Record(kind, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// lookup walks candidate key paths and returns the first present, non-null value.
func lookup(raw Raw, paths []string) (any, bool) {
	for _, path := range paths {
		if v, ok := dig(raw, strings.Split(path, ".")); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func dig(raw Raw, parts []string) (any, bool) {
	v, ok := raw[parts[0]]
	if !ok || len(parts) == 1 {
		return v, ok
	}
	nested, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return dig(nested, parts[1:])
}

func lookupString(raw Raw, paths []string) string {
	for _, path := range paths {
		v, ok := dig(raw, strings.Split(path, "."))
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(toString(v)); s != "" {
			return s
		}
	}
	return ""
}

func lookupFloat(raw Raw, paths []string) *float64 {
	for _, path := range paths {
		v, ok := dig(raw, strings.Split(path, "."))
		if !ok || v == nil {
			continue
		}
		if f := toFloat(v); f != nil {
			return f
		}
	}
	return nil
}

func lookupTime(raw Raw, paths []string) *time.Time {
	v, ok := lookup(raw, paths)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", model.DateLayout} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return &t
		}
	}
	return nil
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// toFloat accepts JSON numbers and numeric strings (optionally with thousands
// separators or a currency sign); anything else is missing.
func toFloat(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return nil
		}
		f = n
	case string:
		s := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(x))
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = n
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
