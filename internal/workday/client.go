package workday

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"people-sync/internal/config"
	"people-sync/internal/httpclient"
	"people-sync/internal/record"
)

// maxBody bounds how much of a response is read.
const maxBody = 256 << 20

// Client fetches the report over HTTP.
type Client struct {
	url      string
	username string
	password config.Secret
	http     *http.Client
	logger   *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport client. Bearer credentials are then
// the caller's responsibility.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// NewClient builds a client from the run settings. Basic auth sends the
// username and password on each request; bearer auth goes through an oauth2
// static token source.
func NewClient(s *config.Settings, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		url:    s.WorkdayReportURL,
		logger: logger,
	}

	timeout := s.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}

	switch s.WorkdayAuthType {
	case config.AuthBasic:
		c.username = s.WorkdayUsername
		c.password = s.WorkdayPassword
		c.http = httpclient.New(timeout)
	default:
		c.http = httpclient.NewBearer(timeout, s.WorkdayAPIKey.Value())
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchReport downloads the report and returns its entries. Non-2xx
// responses are returned as *FetchError.
func (c *Client) FetchReport(ctx context.Context) ([]record.Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build report request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password.Value())
	}

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	c.logger.Debug("report response", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("report error body", "status", resp.StatusCode, "body", string(body))
		return nil, newFetchError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	entries, err := ParseReport(body)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}

	return entries, nil
}
