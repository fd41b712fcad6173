// Package gateway forwards constructed conversation messages to the external
// model provider and normalizes provider responses and failures into a
// uniform result. This file defines the typed failure taxonomy; callers
// collapse all kinds into a single generic user-facing message and keep the
// detail for server-side logs.
package gateway

import "fmt"

// ErrorKind classifies a gateway failure.
type ErrorKind string

const (
	// KindUnreachable covers network-level failures: timeout, DNS, reset.
	KindUnreachable ErrorKind = "unreachable"
	// KindMalformed covers provider responses that do not parse into the
	// expected structure.
	KindMalformed ErrorKind = "malformed"
	// KindRejected covers provider error statuses and responses with no
	// usable answer content.
	KindRejected ErrorKind = "rejected"
)

// Error is the failure type returned by the gateway. It wraps the underlying
// cause so callers can log it while keying behavior off Kind alone.
type Error struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gateway: %s", e.Kind)
	}
	return fmt.Sprintf("gateway: %s: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }
