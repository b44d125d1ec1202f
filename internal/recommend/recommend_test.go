package recommend

import (
	"testing"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

func TestScore_Bounds(t *testing.T) {
	req := model.RecommendationRequest{EventType: "wedding", Guests: 100, Budget: 5000}
	for _, p := range []model.Package{
		{Category: "wedding", Price: 4000, Capacity: 150},
		{Category: "conference", Price: 50000, Capacity: 10},
		{},
	} {
		s := Score(req, p)
		if s < 0 || s > 1 {
			t.Errorf("Score(%+v) = %v, out of [0,1]", p, s)
		}
	}
}

func TestScore_PerfectMatch(t *testing.T) {
	req := model.RecommendationRequest{EventType: "Wedding", Guests: 100, Budget: 5000}
	p := model.Package{Category: "wedding", Price: 5000, Capacity: 120}
	if s := Score(req, p); s != 1 {
		t.Errorf("Score = %v, want 1", s)
	}
}

func TestScore_TypoStillRanksAboveUnrelated(t *testing.T) {
	req := model.RecommendationRequest{EventType: "weding", Guests: 50, Budget: 2000}
	near := model.Package{Category: "wedding", Price: 2000, Capacity: 60}
	far := model.Package{Category: "corporate", Price: 2000, Capacity: 60}
	if Score(req, near) <= Score(req, far) {
		t.Errorf("typo match %v should beat unrelated %v", Score(req, near), Score(req, far))
	}
}

func TestFits(t *testing.T) {
	for _, tc := range []struct {
		budget, price float64
		want          float64
	}{
		{1000, 800, 1},
		{1000, 1500, 0.5},
		{1000, 2500, 0},
		{0, 10, 0},
	} {
		if got := budgetFit(tc.budget, tc.price); got != tc.want {
			t.Errorf("budgetFit(%v, %v) = %v, want %v", tc.budget, tc.price, got, tc.want)
		}
	}
	for _, tc := range []struct {
		guests, capacity int
		want             float64
	}{
		{50, 40, 0},
		{50, 50, 1},
		{50, 100, 1},
		{10, 60, 0.5},
		{10, 1000, 0},
	} {
		if got := capacityFit(tc.guests, tc.capacity); got != tc.want {
			t.Errorf("capacityFit(%d, %d) = %v, want %v", tc.guests, tc.capacity, got, tc.want)
		}
	}
}

func TestRank_PreservesOrder(t *testing.T) {
	pkgs := []model.Package{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := Rank(model.RecommendationRequest{EventType: "party"}, pkgs)
	for i, r := range got {
		if r.ID != pkgs[i].ID {
			t.Errorf("Rank[%d] = %s, want %s", i, r.ID, pkgs[i].ID)
		}
		if r.Record().Score == nil {
			t.Errorf("Rank[%d] missing score", i)
		}
	}
}
