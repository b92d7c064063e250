package glean

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-sync/internal/config"
	"people-sync/internal/delivery"
	"people-sync/internal/logging"
	"people-sync/internal/record"
)

type receivedPage struct {
	Path               string
	Auth               string
	UploadID           string            `json:"uploadId"`
	IsFirstPage        bool              `json:"isFirstPage"`
	IsLastPage         bool              `json:"isLastPage"`
	ForceRestartUpload bool              `json:"forceRestartUpload"`
	Employees          []json.RawMessage `json:"employees"`
	Teams              []json.RawMessage `json:"teams"`
}

// fakeGlean records uploads. respond picks the status and body per page.
type fakeGlean struct {
	mu        sync.Mutex
	pages     []receivedPage
	processed int

	respond       func(page int) (int, string)
	processStatus int
}

func (f *fakeGlean) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/api/index/v1/processallemployeesandteams" {
		f.processed++

		if f.processStatus != 0 {
			w.WriteHeader(f.processStatus)
		}

		return
	}

	var p receivedPage

	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	p.Path = r.URL.Path
	p.Auth = r.Header.Get("Authorization")
	f.pages = append(f.pages, p)

	if f.respond != nil {
		status, msg := f.respond(len(f.pages) - 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(msg))
	}
}

func newTestClient(t *testing.T, f *fakeGlean, batchSize int) *Client {
	t.Helper()

	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	s := &config.Settings{
		GleanBackendDomain: "unused.example.com",
		GleanAPIKey:        "glean-key",
		BatchSize:          batchSize,
		HTTPTimeout:        5 * time.Second,
	}

	return NewClient(s, logging.Discard(),
		WithBaseURL(srv.URL+"/api/index/v1/"),
		WithClock(func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }),
	)
}

func people(n int) []*record.Record {
	out := make([]*record.Record, n)
	for i := range out {
		r := record.New()
		r.Set("email", fmt.Sprintf("p%d@x.io", i))
		out[i] = r
	}

	return out
}

func TestBulkIndex_People(t *testing.T) {
	f := &fakeGlean{}
	c := newTestClient(t, f, 2)

	res, err := c.BulkIndex(context.Background(), config.DataPeople, people(5))
	require.NoError(t, err)

	require.Len(t, f.pages, 3)
	assert.Equal(t, 1, f.processed)

	for i, p := range f.pages {
		assert.Equal(t, "/api/index/v1/bulkindexemployees", p.Path)
		assert.Equal(t, "Bearer glean-key", p.Auth)
		assert.Equal(t, res.UploadID, p.UploadID)
		assert.Equal(t, i == 0, p.IsFirstPage)
		assert.Equal(t, i == 0, p.ForceRestartUpload)
		assert.Equal(t, i == 2, p.IsLastPage)
		assert.Nil(t, p.Teams)
	}

	assert.Len(t, f.pages[0].Employees, 2)
	assert.Len(t, f.pages[2].Employees, 1)
	assert.JSONEq(t, `{"email":"p4@x.io"}`, string(f.pages[2].Employees[0]))

	assert.True(t, res.Success)
	assert.Equal(t, 5, res.RecordsUploaded)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2026, res.Timestamp.Year())
}

func TestBulkIndex_Teams(t *testing.T) {
	f := &fakeGlean{}
	c := newTestClient(t, f, 250)

	team := record.New()
	team.Set("id", "T1")
	team.Set("members", []record.Member{{Email: "a@x.io"}})

	_, err := c.BulkIndex(context.Background(), config.DataTeams, []*record.Record{team})
	require.NoError(t, err)

	require.Len(t, f.pages, 1)
	assert.Equal(t, "/api/index/v1/bulkindexteams", f.pages[0].Path)
	assert.True(t, f.pages[0].IsFirstPage)
	assert.True(t, f.pages[0].IsLastPage)
	require.Len(t, f.pages[0].Teams, 1)
	assert.JSONEq(t, `{"id":"T1","members":[{"email":"a@x.io"}]}`, string(f.pages[0].Teams[0]))
}

func TestBulkIndex_StopsAtFirstRejectedPage(t *testing.T) {
	f := &fakeGlean{respond: func(page int) (int, string) {
		if page == 1 {
			return http.StatusConflict, "conflict"
		}

		return http.StatusOK, ""
	}}
	c := newTestClient(t, f, 1)

	_, err := c.BulkIndex(context.Background(), config.DataPeople, people(4))

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Page)
	require.ErrorIs(t, err, ErrDuplicateUpload)
	require.NotErrorIs(t, err, ErrRateLimited)

	assert.Len(t, f.pages, 2, "no page is sent after a rejection")
	assert.Zero(t, f.processed)
}

func TestBulkIndex_StatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		message   string
		retryable bool
	}{
		{http.StatusConflict, "Duplicate upload ID", false},
		{http.StatusTooManyRequests, "rate limit exceeded", true},
		{http.StatusInternalServerError, "currently unavailable", true},
		{http.StatusNotImplemented, "currently unavailable", true},
		{http.StatusServiceUnavailable, "currently unavailable", true},
		{http.StatusBadRequest, "invalid or malformed", false},
		{http.StatusUnauthorized, "ENTITIES scope", false},
		{http.StatusMethodNotAllowed, "supported method", false},
		{http.StatusForbidden, "forbidden body", false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			f := &fakeGlean{respond: func(int) (int, string) { return tt.status, "forbidden body" }}
			c := newTestClient(t, f, 10)

			_, err := c.BulkIndex(context.Background(), config.DataPeople, people(1))

			var de *DeliveryError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.status, de.Status)
			assert.Contains(t, de.Message, tt.message)
			assert.Equal(t, tt.retryable, de.Retryable)
		})
	}
}

func TestBulkIndex_BadRequestWithSuccessBodyIsAWarning(t *testing.T) {
	f := &fakeGlean{respond: func(int) (int, string) {
		return http.StatusBadRequest, "Employees uploaded successfully, 1 skipped"
	}}
	c := newTestClient(t, f, 10)

	res, err := c.BulkIndex(context.Background(), config.DataPeople, people(3))
	require.NoError(t, err)

	assert.Equal(t, 3, res.RecordsUploaded)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "400 on success")
	assert.Equal(t, 1, f.processed)
}

func TestBulkIndex_ProcessFailureIsAWarning(t *testing.T) {
	f := &fakeGlean{processStatus: http.StatusInternalServerError}
	c := newTestClient(t, f, 10)

	res, err := c.BulkIndex(context.Background(), config.DataPeople, people(1))
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "3 hours")
}

func TestBulkIndex_InputErrors(t *testing.T) {
	f := &fakeGlean{}
	c := newTestClient(t, f, 10)

	_, err := c.BulkIndex(context.Background(), config.DataPeople, nil)
	require.ErrorIs(t, err, delivery.ErrEmptyBatch)

	_, err = c.BulkIndex(context.Background(), config.DataType("groups"), people(1))
	require.ErrorIs(t, err, ErrInvalidDataType)

	assert.Empty(t, f.pages)
}

func TestNewClient_BaseURL(t *testing.T) {
	c := NewClient(&config.Settings{GleanBackendDomain: "acme-be.glean.com", BatchSize: 1}, logging.Discard())
	assert.Equal(t, "https://acme-be.glean.com/api/index/v1", c.baseURL)
}
