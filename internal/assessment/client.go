package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leadscope/internal/logging"

	"github.com/google/uuid"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// assessmentPath is joined with the escaped ticker.
const assessmentPath = "/api/v1/assessment/"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Requests slower than this are logged as warnings.
const slowRequestThreshold = 5 * time.Second

// Provider produces an assessment for a normalized ticker.
type Provider interface {
	Fetch(ctx context.Context, ticker string) (*Assessment, error)
}

// HTTPClient fetches assessments from the remote provider API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(h *HTTPClient) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets a whole-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(h *HTTPClient) {
		h.client.Timeout = d
	}
}

// NewHTTPClient creates a provider client. An empty baseURL falls back to
// DefaultBaseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BaseURL returns the configured base URL without a trailing slash.
func (h *HTTPClient) BaseURL() string {
	return h.baseURL
}

// URLFor builds the request URL for a raw ticker.
func (h *HTTPClient) URLFor(raw string) (string, error) {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return "", err
	}
	return h.baseURL + assessmentPath + url.PathEscape(ticker), nil
}

// Fetch issues one GET for the ticker. The returned assessment has
// CompanyName set to the normalized ticker.
func (h *HTTPClient) Fetch(ctx context.Context, raw string) (*Assessment, error) {
	ticker, err := NormalizeTicker(raw)
	if err != nil {
		return nil, err
	}
	endpoint := h.baseURL + assessmentPath + url.PathEscape(ticker)
	requestID := uuid.NewString()
	log := logging.Get(logging.CategoryAPI).With("request_id", requestID, "ticker", ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	timer := logging.StartTimer(logging.CategoryAPI, "GET "+endpoint)
	log.Info("GET %s", endpoint)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Error("request failed after %v: %v", timer.Stop(), err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	elapsed := timer.StopWithThreshold(slowRequestThreshold)
	log.Debug("status %d in %v", resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		perr := &ProviderError{Status: resp.StatusCode, Message: detailMessage(body)}
		log.Warn("provider returned %d: %s", resp.StatusCode, perr.Message)
		return nil, perr
	}

	var a Assessment
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		log.Error("failed to decode assessment: %v", err)
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	a.CompanyName = ticker

	log.Info("%d pain cards", len(a.PainCards))
	return &a, nil
}

// detailMessage extracts a string "detail" field from an error body.
func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return UnknownErrorMessage
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil || detail == "" {
		return UnknownErrorMessage
	}
	return detail
}
