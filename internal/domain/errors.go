package domain

import (
	"fmt"
	"strings"
)

// The client-facing error taxonomy. Callers branch on these with
// errors.As, never on message text. Anything that is not one of
// these types is treated by the transport layer as a storage fault:
// logged in full, returned to the client as an opaque 500.

// MalformedError reports required fields that were missing or empty
// from a request. Not retryable without changing the input.
type MalformedError struct {
	Missing []string
}

func (e *MalformedError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// InvalidChoiceError reports a supplied name that is not a member of
// its catalog, along with the full list of currently valid options so
// the caller can correct the request.
type InvalidChoiceError struct {
	Field        string
	Value        string
	ValidOptions []string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid %s %q, choose from: %s",
		e.Field, e.Value, strings.Join(e.ValidOptions, ", "))
}

// OrderNotFoundError reports a referenced order id that does not
// exist. This is the one expected, benign failure of the read path.
type OrderNotFoundError struct {
	ID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order %d not found", e.ID)
}
