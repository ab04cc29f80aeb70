package ephemeris

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"alchm-engine/internal/domain"
)

// DefaultHTTPTimeout bounds a single HTTP position fetch.
const DefaultHTTPTimeout = 5 * time.Second

// HTTPSource fetches positions from an HTTP JSON ephemeris API. It is the
// primary resolution tier.
type HTTPSource struct {
	name     string
	endpoint string
	client   *http.Client
}

// HTTPSourceOption configures HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.client.Timeout = d
	}
}

// NewHTTPSource creates an HTTP position source. The endpoint is queried as
// GET endpoint?date=YYYY-MM-DD and must answer the shared positions
// envelope.
func NewHTTPSource(name, endpoint string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		name:     name,
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the source in logs and metrics.
func (s *HTTPSource) Name() string {
	return s.name
}

// Fetch requests positions for the given date and decodes them at the
// strict payload boundary.
func (s *HTTPSource) Fetch(ctx context.Context, date time.Time) (map[domain.Body]domain.PlanetaryPosition, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("date", domain.DateKeyFor(date))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch positions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch positions: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decodeSnapshotPayload(body)
}

// Verify interface compliance at compile time.
var _ PositionSource = (*HTTPSource)(nil)
