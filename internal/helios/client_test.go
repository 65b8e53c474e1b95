// internal/helios/client_test.go
package helios

import (
	"errors"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/tamzrod/helios-modbus/internal/codec"
)

// ---- fake transport ----

type writeCall struct {
	address uint16
	unitID  uint8
	words   []uint16
}

type readCall struct {
	address uint16
	count   uint16
	unitID  uint8
}

type fakeTransport struct {
	mu sync.Mutex

	writes []writeCall
	reads  []readCall
	ops    []string

	reply    string // decoded reply served on every read
	writeErr error
	readErr  error
}

func (f *fakeTransport) WriteRegisters(address uint16, values []uint16, unitID uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "write")
	f.writes = append(f.writes, writeCall{address: address, unitID: unitID, words: values})
	return f.writeErr
}

func (f *fakeTransport) ReadRegisters(address, count uint16, unitID uint8) ([]uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "read")
	f.reads = append(f.reads, readCall{address: address, count: count, unitID: unitID})
	if f.readErr != nil {
		return nil, f.readErr
	}
	words := codec.Encode(f.reply)
	for len(words) < int(count) {
		words = append(words, 0)
	}
	return words[:count], nil
}

func (f *fakeTransport) written(i int) string {
	w := f.writes[i].words
	return codec.Decode(w, len(w)*2)
}

// ---- tests ----

func TestWriteRequest_Addressing(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr)

	assert.NilError(t, c.WriteRequest(4))

	assert.Equal(t, len(tr.writes), 1)
	assert.Equal(t, tr.writes[0].address, uint16(1))
	assert.Equal(t, tr.writes[0].unitID, uint8(180))
	assert.DeepEqual(t, tr.writes[0].words, codec.Encode("v00004\x00"))
}

func TestWriteValue_Command(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr)

	assert.NilError(t, c.WriteValue(102, 1))
	assert.DeepEqual(t, tr.writes[0].words, codec.Encode("v00102=1\x00"))
	assert.Equal(t, tr.written(0), "v00102=1")
}

func TestWriteRequest_InvalidIDNoIO(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr)

	for _, id := range []RegisterID{-1, 100000, 1 << 30} {
		err := c.WriteRequest(id)

		var invalid *InvalidRegisterIDError
		assert.Assert(t, errors.As(err, &invalid), "id=%d err=%v", id, err)
		assert.Equal(t, invalid.ID, int(id))
	}

	_, err := c.ReadResponse(-5, 32)
	var invalid *InvalidRegisterIDError
	assert.Assert(t, errors.As(err, &invalid))

	assert.Equal(t, len(tr.ops), 0)
}

func TestReadResponse_DeviceName(t *testing.T) {
	tr := &fakeTransport{reply: "v00000=HeliosVent\x00\x00"}
	c := New(tr)

	resp, err := c.ReadResponse(0, 32)
	assert.NilError(t, err)
	assert.Equal(t, resp.ID, RegisterID(0))
	assert.Equal(t, resp.Value, "HeliosVent")

	assert.DeepEqual(t, tr.ops, []string{"write", "read"})
	assert.Equal(t, tr.written(0), "v00000")
	assert.Equal(t, tr.reads[0], readCall{address: 1, count: 32, unitID: 180})
}

func TestRequestSetAndRead_SingleWrite(t *testing.T) {
	tr := &fakeTransport{reply: "v00102=50\x00"}
	c := New(tr)

	resp, err := c.RequestSetAndRead(102, 1, 10)
	assert.NilError(t, err)
	assert.Equal(t, resp, Response{ID: 102, Value: "50"})

	assert.DeepEqual(t, tr.ops, []string{"write", "read"})
	assert.DeepEqual(t, tr.writes[0].words, codec.Encode("v00102=1\x00"))
	assert.Equal(t, tr.reads[0].count, uint16(10))
}

func TestReadResponse_MalformedReply(t *testing.T) {
	tr := &fakeTransport{reply: "XYZZY\x00"}
	c := New(tr)

	_, err := c.ReadResponse(0, 32)

	var pe *ProtocolError
	assert.Assert(t, errors.As(err, &pe), "err=%v", err)
	assert.Equal(t, pe.Payload, "XYZZY")
	assert.Equal(t, len(tr.reads), 1)
}

func TestReadResponse_TransportErrors(t *testing.T) {
	boom := errors.New("connection reset")

	tr := &fakeTransport{writeErr: boom}
	_, err := New(tr).ReadResponse(0, 32)

	var te *TransportError
	assert.Assert(t, errors.As(err, &te))
	assert.Equal(t, te.Op, "write")
	assert.Assert(t, errors.Is(err, boom))
	assert.Equal(t, len(tr.reads), 0)

	tr = &fakeTransport{readErr: boom}
	_, err = New(tr).ReadResponse(0, 32)
	assert.Assert(t, errors.As(err, &te))
	assert.Equal(t, te.Op, "read")
	assert.Assert(t, errors.Is(err, boom))
}

func TestReadResponse_InvalidLength(t *testing.T) {
	tr := &fakeTransport{reply: "v00000=x"}
	c := New(tr)

	for _, n := range []int{0, -1, MaxReadLength + 1} {
		_, err := c.ReadResponse(0, n)
		assert.Assert(t, errors.Is(err, ErrInvalidLength), "length=%d", n)
	}
	assert.Equal(t, len(tr.ops), 0)
}

func TestWriteValue_NonASCIIRejected(t *testing.T) {
	tr := &fakeTransport{}
	err := New(tr).WriteValue(102, "stufe-ü")
	assert.Assert(t, errors.Is(err, ErrNonASCII))
	assert.Equal(t, len(tr.ops), 0)
}

func TestWriteValue_NilIsPlainRequest(t *testing.T) {
	tr := &fakeTransport{}

	assert.NilError(t, New(tr).WriteValue(102, nil))
	assert.DeepEqual(t, tr.writes[0].words, codec.Encode("v00102\x00"))
}

func TestRequestSetAndRead_NilValue(t *testing.T) {
	tr := &fakeTransport{reply: "v00102=50\x00"}

	resp, err := New(tr).RequestSetAndRead(102, nil, 10)
	assert.NilError(t, err)
	assert.Equal(t, resp, Response{ID: 102, Value: "50"})

	assert.DeepEqual(t, tr.ops, []string{"write", "read"})
	assert.Equal(t, tr.written(0), "v00102")
}

func TestWriteValue_EmbeddedNULRejected(t *testing.T) {
	tr := &fakeTransport{reply: "v00102=1\x00"}
	c := New(tr)

	err := c.WriteValue(102, "1\x00=9")
	assert.Assert(t, errors.Is(err, ErrEmbeddedNUL), "err=%v", err)

	_, err = c.RequestSetAndRead(102, "1\x00", 10)
	assert.Assert(t, errors.Is(err, ErrEmbeddedNUL), "err=%v", err)

	assert.Equal(t, len(tr.ops), 0)
}

func TestClient_Options(t *testing.T) {
	tr := &fakeTransport{}
	c := New(tr, WithAddress(7), WithUnitID(3), WithLogger(nil))

	assert.NilError(t, c.WriteRequest(1))
	assert.Equal(t, tr.writes[0].address, uint16(7))
	assert.Equal(t, tr.writes[0].unitID, uint8(3))
}

func TestClient_ExchangesAreSerialized(t *testing.T) {
	tr := &fakeTransport{reply: "v00005=12:00"}
	c := New(tr)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.ReadResponse(RegTime, DefaultReadLength)
		}()
	}
	wg.Wait()

	assert.Equal(t, len(tr.ops), 32)
	for i := 0; i < len(tr.ops); i += 2 {
		assert.Equal(t, tr.ops[i], "write")
		assert.Equal(t, tr.ops[i+1], "read")
	}
}

func TestConvenienceReads(t *testing.T) {
	tr := &fakeTransport{reply: "v00004=19.10.2026"}
	c := New(tr)

	date, err := c.Date()
	assert.NilError(t, err)
	assert.Equal(t, date, "19.10.2026")

	// reply for another register is a desync
	_, err = c.Time()
	var pe *ProtocolError
	assert.Assert(t, errors.As(err, &pe))
}

func TestSetFanLevel(t *testing.T) {
	tr := &fakeTransport{reply: "v00102=50"}
	c := New(tr)

	got, err := c.SetFanLevel(1)
	assert.NilError(t, err)
	assert.Equal(t, got, "50")
	assert.Equal(t, tr.written(0), "v00102=1")
}
