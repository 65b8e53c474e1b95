// internal/codec/codec.go
package codec

// Encode packs text into 16-bit words, two bytes per word.
// Byte order inside a word is big-endian (earlier byte = high byte).
// An odd trailing byte is packed alone with a zero low byte.
//
// Encode works on the raw bytes of the string. Multi-byte UTF-8
// characters are emitted byte by byte; callers that need the
// single-byte protocol contract must reject them first.
func Encode(text string) []uint16 {
	b := []byte(text)
	out := make([]uint16, (len(b)+1)/2)

	for i := 0; i < len(b); i += 2 {
		hi := b[i]
		var lo byte
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

// Decode unpacks words into at most byteLength bytes and strips
// trailing NUL padding.
// Words beyond byteLength are ignored. No validation is performed.
func Decode(words []uint16, byteLength int) string {
	if byteLength <= 0 {
		return ""
	}

	n := len(words) * 2
	if n > byteLength {
		n = byteLength
	}

	b := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		w := words[i/2]
		if i%2 == 0 {
			b = append(b, byte(w>>8))
		} else {
			b = append(b, byte(w))
		}
	}

	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}

	return string(b[:end])
}
