// internal/codec/registers.go
package codec

// RegistersToBytes lays registers out in Modbus memory order (BIG-ENDIAN).
func RegistersToBytes(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

// BytesToRegisters is the inverse of RegistersToBytes.
// A trailing odd byte is dropped.
func BytesToRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
