package workday

import (
	"fmt"
	"net/http"
)

// FetchError is a non-2xx response from the report endpoint.
type FetchError struct {
	Status  int
	Message string
	// Retryable is set for rate limiting and unavailability. The run itself
	// never retries; a scheduler may.
	Retryable bool
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching the Workday data failed (HTTP %d): %s", e.Status, e.Message)
}

var statusMessages = map[int]string{
	http.StatusTooManyRequests:     "Workday API rate limit exceeded. Skipping this run.",
	http.StatusInternalServerError: "The Workday endpoint is currently unavailable. Please try again later.",
	http.StatusNotImplemented:      "The Workday endpoint is currently unavailable. Please try again later.",
	http.StatusServiceUnavailable:  "The Workday endpoint is currently unavailable. Please try again later.",
	http.StatusBadRequest:          "Invalid request. Please check the request data and try again.",
	http.StatusUnauthorized: "Unauthorized request. Please check that the credentials or API key used are valid " +
		"and try again.",
}

func newFetchError(status int, body string) *FetchError {
	msg, ok := statusMessages[status]
	if !ok {
		msg = body
	}

	return &FetchError{
		Status:  status,
		Message: msg,
		Retryable: status == http.StatusTooManyRequests ||
			status == http.StatusInternalServerError ||
			status == http.StatusNotImplemented ||
			status == http.StatusServiceUnavailable,
	}
}
