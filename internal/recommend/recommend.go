// Package recommend scores catalog packages against a recommendation request.
package recommend

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Weights of each signal in the final score. They sum to 1.
const (
	weightType     = 0.5
	weightBudget   = 0.3
	weightCapacity = 0.2
)

// Score returns how well pkg fits req, in [0,1].
func Score(req model.RecommendationRequest, pkg model.Package) float64 {
	s := weightType*typeSimilarity(req.EventType, pkg.Category, pkg.Name) +
		weightBudget*budgetFit(req.Budget, pkg.Price) +
		weightCapacity*capacityFit(req.Guests, pkg.Capacity)
	return math.Max(0, math.Min(1, s))
}

// Rank scores every package. Order follows the input; sorting is left to the
// list pipeline.
func Rank(req model.RecommendationRequest, pkgs []model.Package) []model.Recommendation {
	out := make([]model.Recommendation, len(pkgs))
	for i, p := range pkgs {
		out[i] = model.Recommendation{Package: p, Score: round(Score(req, p))}
	}
	return out
}

// typeSimilarity compares the requested event type with the package category
// (and name, whichever is closer) using normalized edit distance. A substring
// hit counts as a full match.
func typeSimilarity(want string, candidates ...string) float64 {
	w := strings.ToLower(strings.TrimSpace(want))
	if w == "" {
		return 0
	}
	best := 0.0
	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if strings.Contains(c, w) || strings.Contains(w, c) {
			return 1
		}
		longest := max(utf8.RuneCountInString(w), utf8.RuneCountInString(c))
		sim := 1 - float64(levenshtein.ComputeDistance(w, c))/float64(longest)
		best = math.Max(best, sim)
	}
	return best
}

// budgetFit is 1 when the package is within budget and decays linearly to 0
// at twice the budget.
func budgetFit(budget, price float64) float64 {
	if budget <= 0 {
		return 0
	}
	if price <= budget {
		return 1
	}
	return math.Max(0, 1-(price-budget)/budget)
}

// capacityFit is 1 when the package fits the guests without being more than
// twice as large; oversized venues lose points, undersized ones score 0.
func capacityFit(guests, capacity int) float64 {
	if guests <= 0 || capacity < guests {
		return 0
	}
	ratio := float64(capacity) / float64(guests)
	if ratio <= 2 {
		return 1
	}
	return math.Max(0, 1-(ratio-2)/8)
}

func round(f float64) float64 {
	return math.Round(f*1000) / 1000
}
