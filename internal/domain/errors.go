package domain

import "fmt"

// ValidationError signals malformed input. It is the only error class that
// FindMatches surfaces to the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
