package workday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"people-sync/internal/config"
	"people-sync/internal/logging"
)

const reportBody = `{"Report_Entry": [{"Work_Email": "a@x.io"}]}`

func TestFetchReport_Bearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer wd-key", r.Header.Get("Authorization"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(reportBody))
	}))
	defer srv.Close()

	s := &config.Settings{
		WorkdayReportURL: srv.URL + "/report?format=json",
		WorkdayAuthType:  config.AuthBearer,
		WorkdayAPIKey:    "wd-key",
	}

	entries, err := NewClient(s, logging.Discard()).FetchReport(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a@x.io", entries[0].Lookup("Work_Email"))
}

func TestFetchReport_Basic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "workdayuser" || pass != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = w.Write([]byte(reportBody))
	}))
	defer srv.Close()

	s := &config.Settings{
		WorkdayReportURL: srv.URL,
		WorkdayAuthType:  config.AuthBasic,
		WorkdayUsername:  "workdayuser",
		WorkdayPassword:  "pw",
	}

	entries, err := NewClient(s, logging.Discard()).FetchReport(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetchReport_StatusErrors(t *testing.T) {
	tests := []struct {
		status    int
		message   string
		retryable bool
	}{
		{http.StatusTooManyRequests, "rate limit exceeded", true},
		{http.StatusInternalServerError, "currently unavailable", true},
		{http.StatusNotImplemented, "currently unavailable", true},
		{http.StatusServiceUnavailable, "currently unavailable", true},
		{http.StatusBadRequest, "Invalid request", false},
		{http.StatusUnauthorized, "Unauthorized request", false},
		{http.StatusTeapot, "short and stout", false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("short and stout\n"))
			}))
			defer srv.Close()

			s := &config.Settings{WorkdayReportURL: srv.URL, WorkdayAPIKey: "k"}

			_, err := NewClient(s, logging.Discard()).FetchReport(context.Background())

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.status, fe.Status)
			assert.Contains(t, fe.Message, tt.message)
			assert.Equal(t, tt.retryable, fe.Retryable)
			assert.Contains(t, err.Error(), "HTTP")
		})
	}
}

func TestFetchReport_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	s := &config.Settings{WorkdayReportURL: srv.URL, WorkdayAPIKey: "k"}

	_, err := NewClient(s, logging.Discard(), WithHTTPClient(srv.Client())).FetchReport(context.Background())
	require.ErrorIs(t, err, ErrInvalidReport)
}

func TestFetchReport_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(reportBody))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &config.Settings{WorkdayReportURL: srv.URL, WorkdayAPIKey: "k"}

	_, err := NewClient(s, logging.Discard()).FetchReport(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
