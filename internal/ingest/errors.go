package ingest

import (
	"errors"
	"fmt"
)

// Validation failures. Every error returned by Parse and Validate wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrMalformedGraph      = errors.New("graph must be an object with nodes and links arrays")
	ErrMissingNodeID       = errors.New("every node requires an id")
	ErrDuplicateNodeID     = errors.New("duplicate node id")
	ErrMissingLinkEndpoint = errors.New("every link requires source and target ids")
)

// ValidationError carries the offending item of a per-item failure.
type ValidationError struct {
	Err   error
	Index int    // position in the nodes or links array
	ID    string // offending node id, when there is one
}

func (e *ValidationError) Error() string {
	switch {
	case e.ID != "":
		return fmt.Sprintf("%v: %s", e.Err, e.ID)
	case errors.Is(e.Err, ErrMissingLinkEndpoint):
		return fmt.Sprintf("%v (link %d)", e.Err, e.Index)
	default:
		return fmt.Sprintf("%v (node %d)", e.Err, e.Index)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }
