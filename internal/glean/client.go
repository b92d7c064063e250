package glean

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"people-sync/internal/config"
	"people-sync/internal/delivery"
	"people-sync/internal/httpclient"
	"people-sync/internal/record"
)

const (
	apiVersion      = "v1"
	employeesPath   = "bulkindexemployees"
	teamsPath       = "bulkindexteams"
	processPath     = "processallemployeesandteams"
	maxResponseBody = 1 << 20

	// uploadedDespite400 appears in the body of 400 responses to pages the
	// API accepted anyway.
	uploadedDespite400 = "Employees uploaded successfully"

	waitProcessed = "1 hour"
	waitScheduled = "3 hours"
)

// UploadResult summarizes a completed upload session.
type UploadResult struct {
	Success         bool
	RecordsUploaded int
	UploadID        string
	Warnings        []string
	Timestamp       time.Time
}

// Client talks to one Glean backend.
type Client struct {
	baseURL   string
	batchSize int
	http      *http.Client
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL replaces the https://<domain>/api/index/v1 prefix.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the bearer-authenticated client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock sets the source of UploadResult.Timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a client for the backend named in s.
func NewClient(s *config.Settings, logger *slog.Logger, opts ...Option) *Client {
	timeout := s.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}

	c := &Client{
		baseURL:   fmt.Sprintf("https://%s/api/index/%s", s.GleanBackendDomain, apiVersion),
		batchSize: s.BatchSize,
		http:      httpclient.NewBearer(timeout, s.GleanAPIKey.Value()),
		logger:    logger,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type bulkPage struct {
	UploadID           string           `json:"uploadId"`
	IsFirstPage        bool             `json:"isFirstPage"`
	IsLastPage         bool             `json:"isLastPage"`
	ForceRestartUpload bool             `json:"forceRestartUpload"`
	Employees          []*record.Record `json:"employees,omitempty"`
	Teams              []*record.Record `json:"teams,omitempty"`
}

// BulkIndex uploads records as one session and then asks the backend to
// process them. Pages go out one at a time; the first rejected page stops
// the session and is returned as *DeliveryError.
func (c *Client) BulkIndex(ctx context.Context, dataType config.DataType, records []*record.Record) (*UploadResult, error) {
	var endpoint string

	switch dataType {
	case config.DataPeople:
		endpoint = employeesPath
	case config.DataTeams:
		endpoint = teamsPath
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidDataType, dataType)
	}

	pages, err := delivery.Paginate(records, c.batchSize)
	if err != nil {
		return nil, fmt.Errorf("upload to Glean: %w", err)
	}

	uploadID := pages[0].Session.ID
	url := c.baseURL + "/" + endpoint

	c.logger.Info("starting upload", "records", len(records), "url", url, "upload_id", uploadID, "pages", len(pages))

	var (
		warnings []string
		count    int
	)

	for _, p := range pages {
		body := bulkPage{
			UploadID:           p.Session.ID,
			IsFirstPage:        p.Session.IsFirstPage,
			IsLastPage:         p.Session.IsLastPage,
			ForceRestartUpload: p.Session.ForceRestart,
		}

		if dataType == config.DataPeople {
			body.Employees = p.Items
		} else {
			body.Teams = p.Items
		}

		warning, err := c.postPage(ctx, url, p.Session.PageIndex, body)
		if err != nil {
			return nil, err
		}

		if warning != "" {
			warnings = append(warnings, warning)
		}

		count += len(p.Items)
		c.logger.Info("uploaded page", "uploaded", count, "total", len(records), "page", p.Session.PageIndex)
	}

	wait := waitProcessed

	if err := c.processAll(ctx); err != nil {
		wait = waitScheduled
		msg := fmt.Sprintf("request to schedule immediate processing of uploaded data failed (%v); "+
			"data will be automatically processed after %s", err, wait)
		c.logger.Warn(msg)
		warnings = append(warnings, msg)
	} else {
		c.logger.Info("immediate processing of uploaded data scheduled")
	}

	c.logger.Info("upload complete", "records", count, "visible_within", wait)

	return &UploadResult{
		Success:         true,
		RecordsUploaded: count,
		UploadID:        uploadID,
		Warnings:        warnings,
		Timestamp:       c.now(),
	}, nil
}

// postPage sends one page. A 400 whose body says the employees were
// uploaded is treated as success and returned as a warning.
func (c *Client) postPage(ctx context.Context, url string, index int, page bulkPage) (string, error) {
	payload, err := json.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("encode page %d: %w", index, err)
	}

	status, body, err := c.post(ctx, url, payload)
	if err != nil {
		return "", fmt.Errorf("upload page %d: %w", index, err)
	}

	c.logger.Debug("page response", "page", index, "status", status)

	switch {
	case status >= 200 && status <= 299:
		return "", nil
	case status == http.StatusBadRequest && strings.Contains(body, uploadedDespite400):
		return "Glean API returned 400 on success with warning: " + body, nil
	default:
		c.logger.Debug("page rejected", "page", index, "status", status, "body", body)
		return "", newDeliveryError(status, body, index)
	}
}

func (c *Client) processAll(ctx context.Context) error {
	status, _, err := c.post(ctx, c.baseURL+"/"+processPath, nil)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return fmt.Errorf("HTTP %d", status)
	}

	return nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) (int, string, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return 0, "", err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return resp.StatusCode, "", err
	}

	return resp.StatusCode, strings.TrimSpace(string(body)), nil
}
