package glean

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrDuplicateUpload matches a *DeliveryError for a reused upload id.
	ErrDuplicateUpload = errors.New("duplicate upload id")
	// ErrRateLimited matches a *DeliveryError for a rate-limited request.
	ErrRateLimited = errors.New("rate limited")
	// ErrInvalidDataType is returned for a data type without an endpoint.
	ErrInvalidDataType = errors.New("invalid data type for upload")
)

// DeliveryError is a rejected page. Pages after it are not sent.
type DeliveryError struct {
	Status  int
	Message string
	// Page is the zero-based index of the rejected page.
	Page      int
	Retryable bool
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("upload to Glean failed (HTTP %d): %s", e.Status, e.Message)
}

// Is lets errors.Is match the status-specific sentinels.
func (e *DeliveryError) Is(target error) bool {
	switch target {
	case ErrDuplicateUpload:
		return e.Status == http.StatusConflict
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	default:
		return false
	}
}

const unavailable = "The Glean API is currently unavailable. Please try again later."

var statusMessages = map[int]string{
	http.StatusConflict:            "Duplicate upload ID. Please try again with a new upload ID.",
	http.StatusTooManyRequests:     "Glean API rate limit exceeded. Please wait a few minutes and try again.",
	http.StatusInternalServerError: unavailable,
	http.StatusNotImplemented:      unavailable,
	http.StatusServiceUnavailable:  unavailable,
	http.StatusBadRequest: "The request data was rejected as being invalid or malformed. " +
		"Please check the data and try again.",
	http.StatusUnauthorized: "Unauthorized. Please check that the Glean Indexing API key is valid " +
		"and has the ENTITIES scope assigned.",
	http.StatusMethodNotAllowed: "The Glean API rejected the request as it was not made using a supported method, " +
		"or to a valid API endpoint. Check the request and try again.",
}

func newDeliveryError(status int, body string, page int) *DeliveryError {
	msg, ok := statusMessages[status]
	if !ok {
		msg = body
	}

	return &DeliveryError{
		Status:  status,
		Message: msg,
		Page:    page,
		Retryable: status == http.StatusTooManyRequests ||
			status == http.StatusInternalServerError ||
			status == http.StatusNotImplemented ||
			status == http.StatusServiceUnavailable,
	}
}
