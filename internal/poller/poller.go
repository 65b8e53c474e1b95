// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/helios-modbus/internal/helios"
)

// Client abstracts the Helios exchanges needed by the poller.
type Client interface {
	ReadResponse(id helios.RegisterID, length int) (helios.Response, error)
	RequestSetAndRead(id helios.RegisterID, value any, length int) (helios.Response, error)
}

// Factory dials a fresh client. It returns the client and its closer.
type Factory func() (Client, func() error, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration // 0 => Run performs a single cycle
	Queries  []Query
	Logger   *slog.Logger
}

// Poller runs the query sequence against one device.
type Poller struct {
	cfg     Config
	client  Client
	closer  func() error
	factory Factory
	log     *slog.Logger
}

// New creates a poller with immutable config.
// factory may be nil; then a dead client is never replaced.
func New(cfg Config, client Client, factory Factory) (*Poller, error) {
	if cfg.Interval < 0 {
		return nil, errors.New("poller: interval must be >= 0")
	}
	if len(cfg.Queries) == 0 {
		return nil, errors.New("poller: at least one query required")
	}
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Poller{cfg: cfg, client: client, factory: factory, log: log}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
// A transport failure discards the client; the factory dials a new
// one on the next cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: time.Now()}

	if p.client == nil {
		if err := p.redial(); err != nil {
			res.Err = err
			return res
		}
	}

	results := make([]QueryResult, 0, len(p.cfg.Queries))

	for _, q := range p.cfg.Queries {
		var (
			resp helios.Response
			err  error
		)
		if q.Value == nil {
			resp, err = p.client.ReadResponse(q.Register, q.Length)
		} else {
			resp, err = p.client.RequestSetAndRead(q.Register, *q.Value, q.Length)
		}
		if err != nil {
			if sessionLost(err) {
				p.discard()
			}
			res.Err = fmt.Errorf("query %q (register %d): %w", q.Name, int(q.Register), err)
			return res
		}

		p.log.Debug("query ok", "name", q.Name, "register", int(resp.ID), "value", resp.Value)

		results = append(results, QueryResult{
			Name:     q.Name,
			Register: q.Register,
			Response: resp,
		})
	}

	// Commit only if all queries succeeded
	res.Results = results
	return res
}

// sessionLost reports whether err means the TCP session is gone.
// A Modbus exception reply came over a live session.
func sessionLost(err error) bool {
	var te *helios.TransportError
	if !errors.As(err, &te) {
		return false
	}
	var me *modbus.ModbusError
	return !errors.As(te.Err, &me)
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	return p.discard()
}

func (p *Poller) redial() error {
	if p.factory == nil {
		return errors.New("poller: client lost and no factory configured")
	}
	c, closer, err := p.factory()
	if err != nil {
		return fmt.Errorf("poller: redial: %w", err)
	}
	p.log.Info("client reconnected")
	p.client, p.closer = c, closer
	return nil
}

func (p *Poller) discard() error {
	var err error
	if p.closer != nil {
		err = p.closer()
	}
	p.client, p.closer = nil, nil
	return err
}
