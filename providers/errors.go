// Package providers holds the error taxonomy shared by the upstream
// data-provider clients.
package providers

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure
type Kind int

const (
	// KindUnconfigured means the provider credential is missing
	KindUnconfigured Kind = iota
	// KindUpstreamFailure means the provider returned a non-success status
	KindUpstreamFailure
	// KindLocationNotFound means both the city and airport lookups came back empty
	KindLocationNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUnconfigured:
		return "unconfigured"
	case KindUpstreamFailure:
		return "upstream_failure"
	case KindLocationNotFound:
		return "location_not_found"
	}
	return "unknown"
}

// Error is a typed provider failure. Handlers recover it locally and
// reply with a fixed apology; it never reaches the transport layer.
type Error struct {
	Op     string
	Kind   Kind
	Status int    // set for KindUpstreamFailure
	Body   string // set for KindUpstreamFailure, kept for logging only
	Term   string // set for KindLocationNotFound
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnconfigured:
		return fmt.Sprintf("%s: API key not configured", e.Op)
	case KindUpstreamFailure:
		return fmt.Sprintf("%s: upstream returned status %d: %s", e.Op, e.Status, e.Body)
	case KindLocationNotFound:
		return fmt.Sprintf("%s: no location found for %q", e.Op, e.Term)
	}
	return fmt.Sprintf("%s: provider error", e.Op)
}

// Unconfigured reports a missing credential for the given operation
func Unconfigured(op string) *Error {
	return &Error{Op: op, Kind: KindUnconfigured}
}

// UpstreamFailure reports a non-success upstream response
func UpstreamFailure(op string, status int, body string) *Error {
	return &Error{Op: op, Kind: KindUpstreamFailure, Status: status, Body: body}
}

// LocationNotFound reports an exhausted location lookup
func LocationNotFound(op, term string) *Error {
	return &Error{Op: op, Kind: KindLocationNotFound, Term: term}
}

// AsError unwraps err into a *Error if it is one
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
