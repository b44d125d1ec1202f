package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// recorder captures the last request a test server saw.
type recorder struct {
	method string
	path   string
	query  url.Values
	body   []byte
}

func newServer(t *testing.T, rec *recorder, status int, resp any) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func TestPath(t *testing.T) {
	tests := []struct {
		kind    model.Kind
		scope   string
		want    string
		wantErr bool
	}{
		{model.KindPackage, "", "/packages", false},
		{model.KindBooking, "", "/bookings", false},
		{model.KindPayment, "", "/payments", false},
		{model.KindReview, "abc", "/packages/abc/reviews", false},
		{model.KindReview, "", "", true},
		{model.KindRecommendation, "", "", true},
	}
	for _, tt := range tests {
		got, err := Path(tt.kind, tt.scope)
		if (err != nil) != tt.wantErr {
			t.Errorf("Path(%s, %q) err = %v, wantErr %v", tt.kind, tt.scope, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Path(%s, %q) = %q, want %q", tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestList_NormalizesItems(t *testing.T) {
	rec := &recorder{}
	c := newServer(t, rec, http.StatusOK, map[string]any{
		"items": []map[string]any{
			{"id": "b1", "booking_status": "confirmed", "package": map[string]any{"name": "Gala", "price": 1200}, "guests": 40},
		},
		"page": 2, "page_size": 5, "total": 6, "total_pages": 2,
	})

	q := url.Values{"status": {"confirmed"}, "page": {"2"}}
	page, err := c.List(context.Background(), model.KindBooking, "/bookings", q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/bookings" {
		t.Errorf("request = %s %s, want GET /bookings", rec.method, rec.path)
	}
	if rec.query.Get("status") != "confirmed" {
		t.Errorf("status param = %q", rec.query.Get("status"))
	}
	if page.Page != 2 || page.TotalPages != 2 || page.Total != 6 {
		t.Errorf("page meta = %+v", page)
	}
	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(page.Items))
	}
	r := page.Items[0]
	if r.Status != "confirmed" || r.Name != "Gala" || r.Amount == nil || *r.Amount != 1200 {
		t.Errorf("record = %+v", r)
	}
	if r.Capacity == nil || *r.Capacity != 40 {
		t.Errorf("capacity = %v, want 40", r.Capacity)
	}
}

func TestFetchAll_WalksPages(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.URL.Query().Get("page_size"); got != strconv.Itoa(FetchPageSize) {
			t.Errorf("page_size = %q", got)
		}
		if got := r.URL.Query().Get("email"); got != "ann@example.com" {
			t.Errorf("email scope = %q", got)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":       []map[string]any{{"id": "p" + strconv.Itoa(page), "price": page * 10}},
			"page":        page,
			"total_pages": 3,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	recs, err := c.FetchAll(context.Background(), model.KindPackage, "/packages", url.Values{"email": {"ann@example.com"}})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(recs) != 3 || recs[0].ID != "p1" || recs[2].ID != "p3" {
		t.Errorf("records = %+v", recs)
	}
}

func TestFetchAll_EmptyCollection(t *testing.T) {
	rec := &recorder{}
	c := newServer(t, rec, http.StatusOK, map[string]any{"items": []any{}, "page": 1, "total_pages": 0})

	recs, err := c.FetchAll(context.Background(), model.KindPayment, "/payments", nil)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("records = %#v, want empty non-nil", recs)
	}
}

func TestBook_ValidationError(t *testing.T) {
	rec := &recorder{}
	c := newServer(t, rec, http.StatusUnprocessableEntity, model.ErrorResponse{
		Error:  "validation failed",
		Fields: []model.FieldError{{Field: "email", Message: "must be a valid email address"}},
	})

	_, err := c.Book(context.Background(), model.CreateBookingRequest{Email: "nope"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if len(apiErr.Fields) != 1 || apiErr.Fields[0].Field != "email" {
		t.Errorf("fields = %+v", apiErr.Fields)
	}

	var sent model.CreateBookingRequest
	if err := json.Unmarshal(rec.body, &sent); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if sent.Email != "nope" {
		t.Errorf("sent email = %q", sent.Email)
	}
}

func TestBook_Success(t *testing.T) {
	rec := &recorder{}
	c := newServer(t, rec, http.StatusCreated, model.Booking{ID: "b1", Reference: "EVT-ABCDEFGH"})

	b, err := c.Book(context.Background(), model.CreateBookingRequest{PackageID: "p1"})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.Reference != "EVT-ABCDEFGH" || rec.method != http.MethodPost || rec.path != "/bookings" {
		t.Errorf("booking = %+v, request = %s %s", b, rec.method, rec.path)
	}
}

func TestRecommend_NormalizesResults(t *testing.T) {
	rec := &recorder{}
	c := newServer(t, rec, http.StatusCreated, map[string]any{
		"request": map[string]any{"id": "r1", "email": "a@b.co"},
		"results": map[string]any{
			"items":       []map[string]any{{"id": "p1", "name": "Gala", "price": 900, "match_score": 0.8}},
			"page":        1,
			"page_size":   10,
			"total":       1,
			"total_pages": 1,
		},
	})

	res, err := c.Recommend(context.Background(), model.RecommendRequest{Email: "a@b.co"}, url.Values{"page_size": {"10"}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if res.Request.ID != "r1" {
		t.Errorf("request id = %q", res.Request.ID)
	}
	if len(res.Results.Items) != 1 || res.Results.Items[0].Score == nil || *res.Results.Items[0].Score != 0.8 {
		t.Errorf("results = %+v", res.Results.Items)
	}
	if res.Results.Items[0].Kind != model.KindRecommendation {
		t.Errorf("kind = %q", res.Results.Items[0].Kind)
	}
	if rec.query.Get("page_size") != "10" {
		t.Errorf("page_size param = %q", rec.query.Get("page_size"))
	}
}

func TestExport_Unavailable(t *testing.T) {
	rec := &recorder{}
	c := newServer(t, rec, http.StatusServiceUnavailable, model.ErrorResponse{Error: "exports are not configured"})

	_, err := c.Export(context.Background(), "bookings", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("err = %v, want 503 APIError", err)
	}
	if rec.path != "/exports/bookings" {
		t.Errorf("path = %q", rec.path)
	}
}

func TestReceipt_ReturnsBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay1/receipt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	data, err := c.Receipt(context.Background(), "pay1")
	if err != nil {
		t.Fatalf("Receipt: %v", err)
	}
	if string(data) != "%PDF-1.3" {
		t.Errorf("data = %q", data)
	}
	if _, err := c.Receipt(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown payment")
	}
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{StatusCode: 409, Message: "package is fully booked for that date"}
	if got := err.Error(); got != "api error 409: package is fully booked for that date" {
		t.Errorf("Error() = %q", got)
	}
}
