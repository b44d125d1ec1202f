package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// SortKey selects the active comparator. Exactly one is active at a time.
type SortKey string

const (
	SortMatchScoreDesc SortKey = "match-score-desc"
	SortPriceAsc       SortKey = "price-asc"
	SortPriceDesc      SortKey = "price-desc"
	SortRecencyDesc    SortKey = "recency-desc"
)

var sortAliases = map[string]SortKey{
	"match-score-desc": SortMatchScoreDesc,
	"match-score":      SortMatchScoreDesc,
	"score":            SortMatchScoreDesc,
	"-score":           SortMatchScoreDesc,
	"price-asc":        SortPriceAsc,
	"price":            SortPriceAsc,
	"price-desc":       SortPriceDesc,
	"-price":           SortPriceDesc,
	"recency-desc":     SortRecencyDesc,
	"recent":           SortRecencyDesc,
	"newest":           SortRecencyDesc,
	"-created_at":      SortRecencyDesc,
}

// ParseSortKey resolves a sort key or one of its aliases.
func ParseSortKey(s string) (SortKey, bool) {
	k, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// DefaultSort is the sort a collection starts with: cheapest first for the
// catalog, best match for recommendations, newest first for everything else.
func DefaultSort(kind model.Kind) SortKey {
	switch kind {
	case model.KindPackage:
		return SortPriceAsc
	case model.KindRecommendation:
		return SortMatchScoreDesc
	default:
		return SortRecencyDesc
	}
}

// Valid reports whether k is one of the known keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortMatchScoreDesc, SortPriceAsc, SortPriceDesc, SortRecencyDesc:
		return true
	}
	return false
}

// MissingPolicy decides where records without a price land when sorting by
// price.
type MissingPolicy string

const (
	// MissingAsZero treats a missing price as 0, so it sorts first ascending
	// and last descending.
	MissingAsZero MissingPolicy = "zero"
	// MissingLast puts records without a price after all priced records in
	// both directions.
	MissingLast MissingPolicy = "last"
	// MissingExclude drops records without a price from a price sort.
	MissingExclude MissingPolicy = "exclude"
)

// ParseMissingPolicy parses a policy name; the empty string is MissingAsZero.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return MissingAsZero, nil
	case MissingAsZero, MissingLast, MissingExclude:
		return p, nil
	default:
		return "", fmt.Errorf("unknown missing-price policy %q", s)
	}
}

// Comparator orders two records; negative means a sorts before b.
type Comparator func(a, b model.Record) int

// ComparatorFor returns the comparator for key under the given policy.
func ComparatorFor(key SortKey, policy MissingPolicy) Comparator {
	switch key {
	case SortPriceAsc:
		return func(a, b model.Record) int { return comparePrice(a, b, policy, false) }
	case SortPriceDesc:
		return func(a, b model.Record) int { return comparePrice(a, b, policy, true) }
	case SortMatchScoreDesc:
		return func(a, b model.Record) int { return cmp.Compare(score(b), score(a)) }
	case SortRecencyDesc:
		return func(a, b model.Record) int { return timestamp(b).Compare(timestamp(a)) }
	default:
		return func(model.Record, model.Record) int { return 0 }
	}
}

// Sort returns a new slice ordered by key. The sort is stable: records with
// equal keys keep their input order. Under MissingExclude a price sort drops
// records without an amount.
func Sort[T Item](items []T, key SortKey, policy MissingPolicy) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if policy == MissingExclude && isPriceKey(key) && it.Record().Amount == nil {
			continue
		}
		out = append(out, it)
	}
	compare := ComparatorFor(key, policy)
	slices.SortStableFunc(out, func(a, b T) int {
		return compare(a.Record(), b.Record())
	})
	return out
}

func isPriceKey(k SortKey) bool {
	return k == SortPriceAsc || k == SortPriceDesc
}

func comparePrice(a, b model.Record, policy MissingPolicy, desc bool) int {
	if policy == MissingLast {
		switch {
		case a.Amount == nil && b.Amount == nil:
			return 0
		case a.Amount == nil:
			return 1
		case b.Amount == nil:
			return -1
		}
	}
	pa, pb := price(a), price(b)
	if desc {
		return cmp.Compare(pb, pa)
	}
	return cmp.Compare(pa, pb)
}

func price(r model.Record) float64 {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}

func score(r model.Record) float64 {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

func timestamp(r model.Record) time.Time {
	if r.Timestamp == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.Timestamp
}
