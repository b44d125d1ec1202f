// Package client talks to the planner HTTP API and normalizes what it gets
// back into model.Record values for the list pipeline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/normalize"
)

// FetchPageSize is the page size used when walking a whole collection.
const FetchPageSize = 100

// maxPages bounds FetchAll against a server that never reports the last page.
const maxPages = 1000

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []model.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		ve := model.ValidationError{Errors: e.Fields}
		return fmt.Sprintf("api error %d: %s", e.StatusCode, ve.Error())
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP/JSON client for the planner API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client targeting baseURL (e.g. "http://localhost:8080").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RawPage is a list envelope whose items are still raw JSON objects.
type RawPage struct {
	Items      []normalize.Raw `json:"items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// Path returns the list endpoint of a collection kind plus an optional scope
// (package ID for reviews).
func Path(kind model.Kind, scope string) (string, error) {
	switch kind {
	case model.KindPackage:
		return "/packages", nil
	case model.KindBooking:
		return "/bookings", nil
	case model.KindPayment:
		return "/payments", nil
	case model.KindReview:
		if scope == "" {
			return "", fmt.Errorf("reviews need a package id")
		}
		return "/packages/" + url.PathEscape(scope) + "/reviews", nil
	default:
		return "", fmt.Errorf("no list endpoint for %q", kind)
	}
}

// List runs the pipeline server-side and returns one normalized page.
func (c *Client) List(ctx context.Context, kind model.Kind, path string, q url.Values) (listing.Page[model.Record], error) {
	var raw RawPage
	if err := c.doJSON(ctx, http.MethodGet, withQuery(path, q), nil, &raw); err != nil {
		return listing.Page[model.Record]{}, err
	}
	return toPage(kind, raw)
}

// FetchAll walks every page of a collection and returns the normalized
// records in server order. extra carries scope parameters such as email.
func (c *Client) FetchAll(ctx context.Context, kind model.Kind, path string, extra url.Values) ([]model.Record, error) {
	q := url.Values{}
	for k, vs := range extra {
		q[k] = vs
	}
	q.Set("page_size", strconv.Itoa(FetchPageSize))

	var out []model.Record
	for page := 1; page <= maxPages; page++ {
		q.Set("page", strconv.Itoa(page))
		var raw RawPage
		if err := c.doJSON(ctx, http.MethodGet, withQuery(path, q), nil, &raw); err != nil {
			return nil, err
		}
		recs, err := normalize.Collection(kind, raw.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
		if len(raw.Items) == 0 || page >= raw.TotalPages {
			break
		}
	}
	if out == nil {
		out = []model.Record{}
	}
	return out, nil
}

// Book submits the booking form.
func (c *Client) Book(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	var b model.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/bookings", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CancelBooking cancels a booking by ID or reference.
func (c *Client) CancelBooking(ctx context.Context, idOrRef string) (*model.Booking, error) {
	var b model.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/bookings/"+url.PathEscape(idOrRef)+"/cancel", nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// RecordPayment records a payment against a booking.
func (c *Client) RecordPayment(ctx context.Context, bookingID string, req model.CreatePaymentRequest) (*model.Payment, error) {
	var p model.Payment
	if err := c.doJSON(ctx, http.MethodPost, "/bookings/"+url.PathEscape(bookingID)+"/payments", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Receipt downloads the PDF receipt of a payment.
func (c *Client) Receipt(ctx context.Context, paymentID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+url.PathEscape(paymentID)+"/receipt", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}

// Recommendations is the decoded response of the recommendation form.
type Recommendations struct {
	Request model.RecommendationRequest
	Results listing.Page[model.Record]
}

// Recommend submits the recommendation form; q carries list parameters.
func (c *Client) Recommend(ctx context.Context, req model.RecommendRequest, q url.Values) (*Recommendations, error) {
	var raw struct {
		Request model.RecommendationRequest `json:"request"`
		Results RawPage                     `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodPost, withQuery("/recommendations", q), req, &raw); err != nil {
		return nil, err
	}
	page, err := toPage(model.KindRecommendation, raw.Results)
	if err != nil {
		return nil, err
	}
	return &Recommendations{Request: raw.Request, Results: page}, nil
}

// ExportResult mirrors the export endpoint's response.
type ExportResult struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Count      int    `json:"count"`
}

// Export asks the server to upload a collection to S3.
func (c *Client) Export(ctx context.Context, collection string, q url.Values) (*ExportResult, error) {
	var res ExportResult
	if err := c.doJSON(ctx, http.MethodPost, withQuery("/exports/"+url.PathEscape(collection), q), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func toPage(kind model.Kind, raw RawPage) (listing.Page[model.Record], error) {
	recs, err := normalize.Collection(kind, raw.Items)
	if err != nil {
		return listing.Page[model.Record]{}, err
	}
	return listing.Page[model.Record]{
		Items:      recs,
		Page:       raw.Page,
		PageSize:   raw.PageSize,
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
	}, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, respBody)
	}
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func apiError(status int, body []byte) error {
	var errResp model.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &APIError{StatusCode: status, Message: errResp.Error, Fields: errResp.Fields}
	}
	return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}
