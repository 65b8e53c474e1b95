// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net"
)

const (
	maxRegisterID = 99999
	maxReadLength = 125
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	h := cfg.Helios

	// ------------------------------------------------------------
	// DEVICE ENDPOINT
	// ------------------------------------------------------------

	if h.Endpoint == "" {
		return errors.New("helios.endpoint is required")
	}
	if _, _, err := net.SplitHostPort(h.Endpoint); err != nil {
		return fmt.Errorf("helios.endpoint %q: must be host:port: %v", h.Endpoint, err)
	}
	if h.TimeoutMs < 0 {
		return fmt.Errorf("helios.timeout_ms must be >= 0, got %d", h.TimeoutMs)
	}
	if h.Poll.IntervalMs < 0 {
		return fmt.Errorf("helios.poll.interval_ms must be >= 0, got %d", h.Poll.IntervalMs)
	}

	// ------------------------------------------------------------
	// QUERIES
	// ------------------------------------------------------------

	if len(h.Queries) == 0 {
		return errors.New("helios.queries: at least one query required")
	}

	names := make(map[string]int)

	for i, q := range h.Queries {
		if q.Register < 0 || q.Register > maxRegisterID {
			return fmt.Errorf(
				"query %d (%q): register %d out of range 0..%d",
				i, q.Name, q.Register, maxRegisterID,
			)
		}

		if q.Length < 0 || q.Length > maxReadLength {
			return fmt.Errorf(
				"query %d (%q): length %d out of range 1..%d",
				i, q.Name, q.Length, maxReadLength,
			)
		}

		// value sanity (ASCII only, no NUL: it terminates the command)
		if q.Value != nil {
			for j := 0; j < len(*q.Value); j++ {
				switch c := (*q.Value)[j]; {
				case c > 0x7F:
					return fmt.Errorf(
						"query %d (%q): value must contain ASCII characters only",
						i, q.Name,
					)
				case c == 0:
					return fmt.Errorf(
						"query %d (%q): value must not contain NUL",
						i, q.Name,
					)
				}
			}
		}

		if q.Name == "" {
			continue
		}
		if prev, exists := names[q.Name]; exists {
			return fmt.Errorf(
				"query name %q used by queries %d and %d",
				q.Name, prev, i,
			)
		}
		names[q.Name] = i
	}

	return nil
}
