// internal/status/constants.go
package status

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy device.
const HealthOK uint16 = 1

// HealthError represents a device error state.
const HealthError uint16 = 2

// ---- ERROR CODES ----
// Values below 0x100 are Modbus exception codes passed through verbatim.

// CodeGeneric is used when an error exposes no better code.
const CodeGeneric uint16 = 0x100

// CodeTransport marks a connection-level failure.
const CodeTransport uint16 = 0x101

// CodeProtocol marks a malformed or out-of-sync reply.
const CodeProtocol uint16 = 0x102

// CodeInvalidRequest marks a request rejected before any I/O.
const CodeInvalidRequest uint16 = 0x103
