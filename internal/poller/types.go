// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/helios-modbus/internal/helios"
)

// Query describes one exchange with the device.
// Value nil => plain read; otherwise write-then-confirm.
type Query struct {
	Name     string
	Register helios.RegisterID
	Value    *string
	Length   int
}

// QueryResult is the parsed reply of a single query.
type QueryResult struct {
	Name     string
	Register helios.RegisterID
	Response helios.Response
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At      time.Time
	Results []QueryResult
	Err     error // non-nil means the poll cycle failed
}
