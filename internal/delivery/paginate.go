package delivery

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrEmptyBatch is returned when there is nothing to upload.
	ErrEmptyBatch = errors.New("no records to upload")
	// ErrInvalidPageSize is returned for a page size below one.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Session is the protocol metadata attached to one page.
type Session struct {
	// ID is shared by every page of the session.
	ID          string
	PageIndex   int
	IsFirstPage bool
	IsLastPage  bool
	// ForceRestart asks the destination to discard any earlier partial
	// upload. It is set on the first page only.
	ForceRestart bool
}

// Page is a contiguous slice of the batch plus its session metadata.
type Page[T any] struct {
	Session Session
	Items   []T
}

// NewSessionID returns a fresh time-ordered upload id.
func NewSessionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate upload id: %w", err)
	}

	return id.String(), nil
}

// Paginate splits items into ceil(len/pageSize) pages in input order under a
// new session id. Items are not copied; pages share the backing array.
func Paginate[T any](items []T, pageSize int) ([]Page[T], error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	id, err := NewSessionID()
	if err != nil {
		return nil, err
	}

	count := (len(items) + pageSize - 1) / pageSize
	pages := make([]Page[T], 0, count)

	for i := range count {
		start := i * pageSize
		end := min(start+pageSize, len(items))

		pages = append(pages, Page[T]{
			Session: Session{
				ID:           id,
				PageIndex:    i,
				IsFirstPage:  i == 0,
				IsLastPage:   i == count-1,
				ForceRestart: i == 0,
			},
			Items: items[start:end:end],
		})
	}

	return pages, nil
}
