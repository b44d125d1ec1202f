package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shivanand-hulikatti/event-planner/internal/config"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{Listing: config.ListingConfig{DefaultPageSize: 10, MaxPageSize: 50, MissingPrice: "zero"}}
}

func TestQueryFromFlags(t *testing.T) {
	cfg = testConfig()
	cmd := newListCmd("bookings", "", model.KindBooking, nil)
	for flag, val := range map[string]string{
		"status":    "Confirmed",
		"search":    "gala",
		"min-price": "100",
		"guests":    "20",
		"page":      "3",
		"page-size": "500",
	} {
		if err := cmd.Flags().Set(flag, val); err != nil {
			t.Fatalf("set %s: %v", flag, err)
		}
	}

	q := queryFromFlags(cmd.Flags(), model.KindBooking)
	if q.Criteria.Status != "Confirmed" || q.Criteria.Search != "gala" {
		t.Errorf("criteria = %+v", q.Criteria)
	}
	if q.Criteria.MinPrice == nil || *q.Criteria.MinPrice != 100 || q.Criteria.MaxPrice != nil {
		t.Errorf("price bounds = %v, %v", q.Criteria.MinPrice, q.Criteria.MaxPrice)
	}
	if q.Criteria.MinCapacity == nil || *q.Criteria.MinCapacity != 20 {
		t.Errorf("min capacity = %v", q.Criteria.MinCapacity)
	}
	if q.Sort != listing.SortRecencyDesc {
		t.Errorf("sort = %s, want bookings default recency-desc", q.Sort)
	}
	if q.Page != 3 || q.PageSize != 50 {
		t.Errorf("page %d size %d, want 3 and clamped 50", q.Page, q.PageSize)
	}
}

func TestQueryFromFlags_Defaults(t *testing.T) {
	cfg = testConfig()
	cmd := newListCmd("packages", "", model.KindPackage, nil)
	q := queryFromFlags(cmd.Flags(), model.KindPackage)
	if q.Sort != listing.SortPriceAsc || q.Page != 1 || q.PageSize != 10 || !q.Criteria.IsZero() {
		t.Errorf("query = %+v", q)
	}
}

func TestPackagesCommand_Local(t *testing.T) {
	var params []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params = append(params, r.URL.RawQuery)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "a", "name": "Budget Bash", "price": 500, "capacity": 30},
				{"id": "b", "name": "Royal Gala", "price": 5000, "capacity": 300},
				{"id": "c", "name": "Garden Party", "base_price": 1500, "max_guests": 80},
			},
			"page":        1,
			"total_pages": 1,
		})
	}))
	defer srv.Close()
	t.Setenv("PLANNER_CLIENT_API_URL", srv.URL)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"packages", "--local", "--sort", "price-desc", "--max-price", "2000"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(params) != 1 || !strings.Contains(params[0], "page_size=100") || strings.Contains(params[0], "max_price") {
		t.Errorf("server saw %v; local mode must fetch unfiltered pages", params)
	}
	text := out.String()
	garden := strings.Index(text, "Garden Party")
	budget := strings.Index(text, "Budget Bash")
	if garden < 0 || budget < 0 || garden > budget {
		t.Errorf("want Garden Party before Budget Bash:\n%s", text)
	}
	if strings.Contains(text, "Royal Gala") {
		t.Errorf("max-price filter not applied:\n%s", text)
	}
	if !strings.Contains(text, "Page 1 of 1 · 2 results · sort price-desc") {
		t.Errorf("pager line missing:\n%s", text)
	}
}
