// internal/config/config.go
package config

type Config struct {
	Helios HeliosConfig `yaml:"helios"`
}

// ---- DEVICE ----

type HeliosConfig struct {
	Endpoint  string  `yaml:"endpoint"`
	UnitID    *uint8  `yaml:"unit_id"` // default 180
	Address   *uint16 `yaml:"address"` // default 1
	TimeoutMs int     `yaml:"timeout_ms"`

	Poll    PollConfig    `yaml:"poll"`
	Queries []QueryConfig `yaml:"queries"`
}

// ---- QUERY ----

// QueryConfig is one exchange with the device.
// Value set => write-then-confirm; Value nil => plain read.
type QueryConfig struct {
	Name     string  `yaml:"name"`
	Register int     `yaml:"register"`
	Value    *string `yaml:"value"`
	Length   int     `yaml:"length"` // byte budget incl. NUL padding; 0 => default
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"` // 0 => run once
}
