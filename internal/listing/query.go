package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query is the full set of pipeline inputs for one list view.
type Query struct {
	Criteria Criteria
	Sort     SortKey
	Page     int
	PageSize int
}

// Defaults carries per-collection fallbacks for ParseQuery.
type Defaults struct {
	Sort        SortKey
	PageSize    int
	MaxPageSize int
}

// ParseQuery reads pipeline inputs from URL query parameters:
//
//	status, payment_status, q (or search), min_price, max_price,
//	min_capacity (or guests), sort, page, page_size
//
// Malformed numbers and unknown sort keys fall back to "unset" or the
// collection default; ParseQuery never fails.
func ParseQuery(v url.Values, d Defaults) Query {
	q := Query{
		Criteria: ParseCriteria(v),
		Sort:     d.Sort,
		Page:     1,
		PageSize: d.PageSize,
	}
	if k, ok := ParseSortKey(v.Get("sort")); ok {
		q.Sort = k
	}
	if n := parseInt(v.Get("page")); n != nil && *n > 0 {
		q.Page = *n
	}
	if n := parseInt(v.Get("page_size")); n != nil && *n > 0 {
		q.PageSize = *n
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if d.MaxPageSize > 0 && q.PageSize > d.MaxPageSize {
		q.PageSize = d.MaxPageSize
	}
	return q
}

// ParseCriteria reads the filter parameters only. Malformed numbers are
// treated as unset.
func ParseCriteria(v url.Values) Criteria {
	return Criteria{
		Status:        v.Get("status"),
		PaymentStatus: v.Get("payment_status"),
		Search:        first(v, "q", "search"),
		MinPrice:      parseFloat(v.Get("min_price")),
		MaxPrice:      parseFloat(v.Get("max_price")),
		MinCapacity:   parseInt(first(v, "min_capacity", "guests")),
	}
}

// Values encodes the query back into URL parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	c := q.Criteria
	if s := normEnum(c.Status); s != "" {
		v.Set("status", s)
	}
	if s := normEnum(c.PaymentStatus); s != "" {
		v.Set("payment_status", s)
	}
	if s := strings.TrimSpace(c.Search); s != "" {
		v.Set("q", s)
	}
	if c.MinPrice != nil {
		v.Set("min_price", strconv.FormatFloat(*c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice != nil {
		v.Set("max_price", strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	if c.MinCapacity != nil {
		v.Set("min_capacity", strconv.Itoa(*c.MinCapacity))
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// Ordered runs filter then sort, without windowing. Exports use it to write
// the whole visible collection.
func Ordered[T Item](items []T, c Criteria, key SortKey, policy MissingPolicy) []T {
	return Sort(Filter(items, c), key, policy)
}

// Run executes the whole pipeline: filter, sort, then paginate.
func Run[T Item](items []T, q Query, policy MissingPolicy) Page[T] {
	return Paginate(Ordered(items, q.Criteria, q.Sort, policy), q.Page, q.PageSize)
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func first(v url.Values, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k); s != "" {
			return s
		}
	}
	return ""
}
