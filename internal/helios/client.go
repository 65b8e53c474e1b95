// internal/helios/client.go
package helios

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/tamzrod/helios-modbus/internal/codec"
)

// Fixed addressing used by Helios controllers.
const (
	Address uint16 = 1
	UnitID  uint8  = 180
)

// MaxReadLength is the largest register count of one holding-register read.
const MaxReadLength = 125

// Transport is the register I/O the client needs.
// Implementations are synchronous and own timeouts.
type Transport interface {
	WriteRegisters(address uint16, values []uint16, unitID uint8) error
	ReadRegisters(address, count uint16, unitID uint8) ([]uint16, error)
}

// Client drives the write-request / read-response exchange.
// One exchange holds the lock from its write until its read returns,
// because the device answers whatever was requested last.
type Client struct {
	mu      sync.Mutex
	tr      Transport
	address uint16
	unitID  uint8
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAddress overrides the Modbus register address (default Address).
func WithAddress(addr uint16) Option {
	return func(c *Client) { c.address = addr }
}

// WithUnitID overrides the Modbus unit id (default UnitID).
func WithUnitID(id uint8) Option {
	return func(c *Client) { c.unitID = id }
}

// WithLogger sets the logger used for per-exchange debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client over an already connected transport.
func New(tr Transport, opts ...Option) *Client {
	c := &Client{
		tr:      tr,
		address: Address,
		unitID:  UnitID,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WriteRequest asks the device for register id.
func (c *Client) WriteRequest(id RegisterID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(id, nil)
}

// WriteValue sets register id to value.
// A nil value writes a plain request.
func (c *Client) WriteValue(id RegisterID, value any) error {
	s := FormatValue(value)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(id, s)
}

// ReadResponse requests id and reads the reply.
// length is the total byte budget including NUL padding; the same
// number of registers is read.
func (c *Client) ReadResponse(id RegisterID, length int) (Response, error) {
	if err := checkLength(length); err != nil {
		return Response{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(id, nil); err != nil {
		return Response{}, err
	}
	return c.read(length)
}

// RequestSetAndRead writes value to id and reads the device's
// acknowledgement. Exactly one write is issued.
// A nil value behaves like ReadResponse.
func (c *Client) RequestSetAndRead(id RegisterID, value any, length int) (Response, error) {
	if err := checkLength(length); err != nil {
		return Response{}, err
	}
	s := FormatValue(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(id, s); err != nil {
		return Response{}, err
	}
	return c.read(length)
}

// caller holds mu
func (c *Client) write(id RegisterID, value *string) error {
	cmd, err := Command(id, value)
	if err != nil {
		return err
	}

	words := codec.Encode(cmd)
	c.log.Debug("helios write", "register", int(id), "command", cmd[:len(cmd)-1], "words", len(words))

	if err := c.tr.WriteRegisters(c.address, words, c.unitID); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// caller holds mu
func (c *Client) read(length int) (Response, error) {
	words, err := c.tr.ReadRegisters(c.address, uint16(length), c.unitID)
	if err != nil {
		return Response{}, &TransportError{Op: "read", Err: err}
	}

	payload := codec.Decode(words, length)
	c.log.Debug("helios read", "payload", payload, "words", len(words))

	return ParseResponse(payload)
}

func checkLength(length int) error {
	if length <= 0 || length > MaxReadLength {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLength, length, MaxReadLength)
	}
	return nil
}
