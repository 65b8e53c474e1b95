// internal/transport/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/helios-modbus/internal/codec"
)

// Client is a single Modbus TCP session to one Helios controller.
// It implements helios.Transport.
// It serializes requests because it mutates SlaveId per call.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// New creates a connected Modbus TCP client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("transport modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("transport modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return newClient(h, modbus.NewClient(h)), nil
}

func newClient(h *modbus.TCPClientHandler, cli modbus.Client) *Client {
	return &Client{handler: h, client: cli}
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// WriteRegisters writes values starting at address (FC 16).
func (c *Client) WriteRegisters(address uint16, values []uint16, unitID uint8) error {
	if len(values) == 0 {
		return errors.New("transport modbus: nothing to write")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setUnit(unitID)

	_, err := c.client.WriteMultipleRegisters(address, uint16(len(values)), codec.RegistersToBytes(values))
	return err
}

// ReadRegisters reads count holding registers starting at address (FC 3).
func (c *Client) ReadRegisters(address, count uint16, unitID uint8) ([]uint16, error) {
	if count == 0 {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setUnit(unitID)

	raw, err := c.client.ReadHoldingRegisters(address, count)
	if err != nil {
		return nil, err
	}
	if len(raw) != int(count)*2 {
		return nil, fmt.Errorf("transport modbus: short read: got=%d bytes want=%d", len(raw), int(count)*2)
	}

	return codec.BytesToRegisters(raw), nil
}

func (c *Client) setUnit(unitID uint8) {
	if c.handler != nil {
		c.handler.SlaveId = unitID
	}
}
