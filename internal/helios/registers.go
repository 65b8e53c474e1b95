// internal/helios/registers.go
package helios

// Known register ids and the read lengths that fit their replies.
const (
	RegDeviceName RegisterID = 0
	RegDate       RegisterID = 4
	RegTime       RegisterID = 5
	RegFanLevel   RegisterID = 102
)

const (
	// DefaultReadLength fits the text registers (name, date, time).
	DefaultReadLength = 32

	fanLevelReadLength = 10
)

// DeviceName returns the controller's model name.
func (c *Client) DeviceName() (string, error) {
	return c.readValue(RegDeviceName, DefaultReadLength)
}

// Date returns the controller date as reported (dd.mm.yyyy).
func (c *Client) Date() (string, error) {
	return c.readValue(RegDate, DefaultReadLength)
}

// Time returns the controller time as reported (hh:mm).
func (c *Client) Time() (string, error) {
	return c.readValue(RegTime, DefaultReadLength)
}

// SetFanLevel sets the fan level and returns the acknowledged value.
func (c *Client) SetFanLevel(level int) (string, error) {
	resp, err := c.RequestSetAndRead(RegFanLevel, level, fanLevelReadLength)
	if err != nil {
		return "", err
	}
	if resp.ID != RegFanLevel {
		return "", &ProtocolError{Payload: resp.Value, Reason: "reply for unexpected register"}
	}
	return resp.Value, nil
}

func (c *Client) readValue(id RegisterID, length int) (string, error) {
	resp, err := c.ReadResponse(id, length)
	if err != nil {
		return "", err
	}
	if resp.ID != id {
		return "", &ProtocolError{Payload: resp.Value, Reason: "reply for unexpected register"}
	}
	return resp.Value, nil
}
