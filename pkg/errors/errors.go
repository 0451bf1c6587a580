package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrRateLimited is returned when the store keeps throttling after all
// retry attempts are exhausted.
type ErrRateLimited struct {
	Attempts int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited by store after %d attempts", e.Attempts)
}

// ErrUpstream is returned for store failures that are not throttling or
// validation (transport errors, malformed responses, 5xx).
type ErrUpstream struct {
	Op      string
	Message string
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream error in %s: %s", e.Op, e.Message)
}

// ErrValidation is returned when the store rejects a mutation (userErrors).
// Never retried.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrSignatureMismatch is returned when an inbound webhook signature does
// not verify. Fail-closed: nothing is parsed or processed.
type ErrSignatureMismatch struct{}

func (e *ErrSignatureMismatch) Error() string {
	return "webhook signature mismatch"
}
