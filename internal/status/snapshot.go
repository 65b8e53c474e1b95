// internal/status/snapshot.go
package status

import (
	"errors"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/helios-modbus/internal/helios"
)

// Snapshot is the device health as seen by the last poll cycles.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// Tracker folds poll outcomes into a Snapshot.
// It is not safe for concurrent use.
type Tracker struct {
	snap       Snapshot
	errorSince time.Time
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot { return t.snap }

// Observe records one poll outcome at time now.
// It reports whether Health or LastErrorCode changed.
func (t *Tracker) Observe(err error, now time.Time) bool {
	prev := t.snap

	if err == nil {
		// Recovery / OK
		t.snap = Snapshot{Health: HealthOK}
		t.errorSince = time.Time{}
		return prev.Health != t.snap.Health || prev.LastErrorCode != 0
	}

	if t.snap.Health != HealthError {
		t.errorSince = now
	}
	t.snap.Health = HealthError
	t.snap.LastErrorCode = ErrorCode(err)

	// seconds_in_error MUST NOT wrap
	secs := now.Sub(t.errorSince) / time.Second
	if secs > 65535 {
		secs = 65535
	}
	t.snap.SecondsInError = uint16(secs)

	return prev.Health != t.snap.Health || prev.LastErrorCode != t.snap.LastErrorCode
}

// ErrorCode extracts a best-effort uint16 code from an error.
// Modbus exceptions keep their exception code.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return uint16(me.ExceptionCode)
	}

	var invalid *helios.InvalidRegisterIDError
	if errors.As(err, &invalid) || errors.Is(err, helios.ErrInvalidLength) || errors.Is(err, helios.ErrNonASCII) ||
		errors.Is(err, helios.ErrEmbeddedNUL) {
		return CodeInvalidRequest
	}

	var pe *helios.ProtocolError
	if errors.As(err, &pe) {
		return CodeProtocol
	}

	var te *helios.TransportError
	if errors.As(err, &te) {
		return CodeTransport
	}

	return CodeGeneric
}
