// internal/helios/command.go
package helios

import (
	"fmt"
	"strconv"
	"strings"
)

// RegisterID is the vendor's logical parameter id.
// It is unrelated to the Modbus register address, which is always Address.
type RegisterID int

// MaxRegisterID is the largest id that fits the 5-digit token.
const MaxRegisterID = 99999

const tokenLen = 6 // "v" + 5 digits

// Token renders id as its canonical "v#####" token.
func Token(id RegisterID) (string, error) {
	if id < 0 || id > MaxRegisterID {
		return "", &InvalidRegisterIDError{ID: int(id)}
	}
	return fmt.Sprintf("v%05d", int(id)), nil
}

// ParseToken parses a "v#####" token back into a RegisterID.
func ParseToken(s string) (RegisterID, error) {
	if len(s) != tokenLen {
		return 0, &ProtocolError{Payload: s, Reason: "token must be 'v' followed by 5 digits"}
	}
	if s[0] != 'v' {
		return 0, &ProtocolError{Payload: s, Reason: "missing leading 'v'"}
	}

	id := 0
	for i := 1; i < tokenLen; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, &ProtocolError{Payload: s, Reason: "non-digit in register id"}
		}
		id = id*10 + int(c-'0')
	}

	return RegisterID(id), nil
}

// Command builds the NUL-terminated command string for id.
// A nil value produces a plain read request.
func Command(id RegisterID, value *string) (string, error) {
	tok, err := Token(id)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(tok)

	if value != nil {
		for i := 0; i < len(*value); i++ {
			switch c := (*value)[i]; {
			case c > 0x7F:
				return "", fmt.Errorf("%w: %q", ErrNonASCII, *value)
			case c == 0:
				return "", fmt.Errorf("%w: %q", ErrEmbeddedNUL, *value)
			}
		}
		sb.WriteByte('=')
		sb.WriteString(*value)
	}

	// terminate with NUL
	sb.WriteByte(0)

	return sb.String(), nil
}

// FormatValue renders the string form of a value for the wire.
// nil renders as nil: no value, a plain request.
func FormatValue(v any) *string {
	if v == nil {
		return nil
	}
	s := formatValue(v)
	return &s
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// Response is one parsed device reply.
type Response struct {
	ID    RegisterID
	Value string
}

// ParseResponse parses a decoded payload of the form v#####[=value].
// Trailing NUL padding is ignored. A missing '=' yields an empty value.
func ParseResponse(payload string) (Response, error) {
	s := strings.TrimRight(payload, "\x00")

	prefix, value, _ := strings.Cut(s, "=")

	id, err := ParseToken(prefix)
	if err != nil {
		if pe, ok := err.(*ProtocolError); ok {
			pe.Payload = s
		}
		return Response{}, err
	}

	return Response{ID: id, Value: value}, nil
}
