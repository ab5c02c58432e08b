package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medlux/wardgrid/internal/grid"
)

const (
	defaultUserAgent = "wardgrid/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 32 << 20
)

// HTTPSource fetches a JSON record list from a URL.
type HTTPSource struct {
	name      string
	url       *url.URL
	http      *http.Client
	userAgent string
}

// NewHTTPSource builds an HTTPSource for rawURL.
func NewHTTPSource(name, rawURL string) (*HTTPSource, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &HTTPSource{
		name: name,
		url:  u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

func (s *HTTPSource) Name() string { return s.name }

// URL returns the endpoint being fetched.
func (s *HTTPSource) URL() string { return s.url.String() }

// Load performs one GET and decodes the body like a JSON file.
func (s *HTTPSource) Load(ctx context.Context) (grid.Dataset, error) {
	if s == nil {
		return nil, fmt.Errorf("source is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch %s: %w", s.url.Path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s returned status %d", s.url.Path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	records, err := DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return records, nil
}

func parseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse url %q: %w", raw, ErrUnknownScheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse url %q: missing host", raw)
	}
	u.Fragment = ""
	return u, nil
}
