package rfceditor

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/rfcdocs/internal/core/domain"
)

// RFC Editor specific errors.
var (
	// ErrInvalidConfig indicates the client configuration is unusable.
	ErrInvalidConfig = errors.New("rfceditor: invalid configuration")

	// ErrEmptyBody indicates a successful response with no content.
	ErrEmptyBody = fmt.Errorf("rfceditor: empty response body: %w", domain.ErrFetchFailure)

	// ErrBodyTooLarge indicates a response larger than the configured cap.
	ErrBodyTooLarge = fmt.Errorf("rfceditor: response body too large: %w", domain.ErrFetchFailure)
)

// APIError represents a non-200 response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rfceditor: HTTP %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps the status to a domain error kind.
func (e *APIError) Unwrap() error {
	if e.NotFound() {
		return domain.ErrNotFound
	}
	return domain.ErrFetchFailure
}

// NotFound reports whether the document does not exist.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}

// Temporary reports whether repeating the request may succeed.
func (e *APIError) Temporary() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusTooManyRequests,
		e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// IsNotFound checks if the error indicates a document was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.NotFound()
	}
	return false
}
