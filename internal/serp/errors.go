package serp

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey   = errors.New("missing search API key")
	ErrEmptyKeyword    = errors.New("empty keyword")
	ErrInvalidResponse = errors.New("invalid response from search API")
)

// APIError is returned when the search API rejects a request or reports an error in its body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("search API error: %s", e.Message)
	}
	return fmt.Sprintf("search API error (HTTP %d): %s", e.Status, e.Message)
}
