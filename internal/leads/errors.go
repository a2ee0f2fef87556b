package leads

import "errors"

var (
	// ErrMissingFields is returned when a required field is absent or empty
	ErrMissingFields = errors.New("missing required fields")
)
