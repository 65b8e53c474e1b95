// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultUnitID  uint8  = 180
	DefaultAddress uint16 = 1
)

const (
	DefaultTimeoutMs  = 2000
	DefaultReadLength = 32
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	h := &cfg.Helios

	if h.UnitID == nil {
		u := DefaultUnitID
		h.UnitID = &u
	}
	if h.Address == nil {
		a := DefaultAddress
		h.Address = &a
	}
	if h.TimeoutMs == 0 {
		h.TimeoutMs = DefaultTimeoutMs
	}

	for i := range h.Queries {
		q := &h.Queries[i]
		if q.Length == 0 {
			q.Length = DefaultReadLength
		}
	}
}
