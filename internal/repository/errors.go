package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound signals a variant mutation or read against a
	// product document that does not exist. A missing variant id inside an
	// existing product is NOT an error; those mutations silently no-op.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError reports a missing or invalid caller-supplied field. It is
// raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
