// internal/helios/errors.go
package helios

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when a read length cannot be served
	// by a single holding-register read.
	ErrInvalidLength = errors.New("helios: invalid read length")

	// ErrNonASCII is returned when a value cannot be carried by the
	// single-byte command string.
	ErrNonASCII = errors.New("helios: value must be ASCII")

	// ErrEmbeddedNUL is returned when a value contains a NUL byte,
	// which would terminate the command early.
	ErrEmbeddedNUL = errors.New("helios: value must not contain NUL")
)

// InvalidRegisterIDError reports a register id outside 0..99999.
// It is raised before any transport I/O.
type InvalidRegisterIDError struct {
	ID int
}

func (e *InvalidRegisterIDError) Error() string {
	return fmt.Sprintf("helios: invalid register id %d (want 0..%d)", e.ID, MaxRegisterID)
}

// ProtocolError reports a decoded reply that does not match v#####[=value].
// The read already happened; the exchange is out of sync.
type ProtocolError struct {
	Payload string
	Reason  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("helios: protocol error: %s (payload=%q)", e.Reason, e.Payload)
}

// TransportError wraps a failure of the underlying register transport.
// It is passed through as-is; nothing here retries.
type TransportError struct {
	Op  string // "write" or "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("helios: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
