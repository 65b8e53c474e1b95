// internal/poller/builder.go
package poller

import (
	"log/slog"
	"time"

	cfg "github.com/tamzrod/helios-modbus/internal/config"
	"github.com/tamzrod/helios-modbus/internal/helios"
	tmodbus "github.com/tamzrod/helios-modbus/internal/transport/modbus"
)

// Build constructs a Poller and wires the Modbus session lifecycle.
// Connection is reused while healthy.
// On transport death, Poller discards the client and uses factory on a future tick.
// Expects a validated and normalized config.
func Build(h cfg.HeliosConfig, log *slog.Logger) (*Poller, error) {
	// client factory: ONE attempt per call
	factory := func() (Client, func() error, error) {
		tr, err := tmodbus.New(tmodbus.Config{
			Endpoint: h.Endpoint,
			Timeout:  time.Duration(h.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		c := helios.New(tr,
			helios.WithAddress(*h.Address),
			helios.WithUnitID(*h.UnitID),
			helios.WithLogger(log),
		)
		return c, tr.Close, nil
	}

	// initial client (fail fast at startup)
	client, closer, err := factory()
	if err != nil {
		return nil, err
	}

	queries := make([]Query, 0, len(h.Queries))
	for _, q := range h.Queries {
		queries = append(queries, Query{
			Name:     q.Name,
			Register: helios.RegisterID(q.Register),
			Value:    q.Value,
			Length:   q.Length,
		})
	}

	p, err := New(
		Config{
			Interval: time.Duration(h.Poll.IntervalMs) * time.Millisecond,
			Queries:  queries,
			Logger:   log,
		},
		client,
		factory,
	)
	if err != nil {
		_ = closer()
		return nil, err
	}
	p.closer = closer

	return p, nil
}
