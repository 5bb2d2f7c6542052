package input

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/inputevent-go"
	"github.com/temoto/washpanel/internal/types"
)

func TestEncoderCommand(t *testing.T) {
	t.Parallel()

	type Case struct {
		prev, value int
		expect      types.Command
	}
	cases := []Case{
		{-1, 0, types.CommandNone},
		{-1, 32, types.CommandNone},
		{-1, 33, types.CommandReturn},
		{-1, 38, types.CommandReturn},
		{-1, 40, types.CommandNone},
		{-1, 45, types.CommandLeft},
		{-1, 48, types.CommandLeft},
		{40, 50, types.CommandRight},
		{52, 49, types.CommandLeft},
		{50, 51, types.CommandNone},
		{52, 50, types.CommandNone},
		{-1, 60, types.CommandNone},
		{-1, 61, types.CommandRight},
		{-1, 67, types.CommandRight},
		{-1, 70, types.CommandNone},
		{-1, 77, types.CommandOk},
		{-1, 78, types.CommandNone},
		{-1, 100, types.CommandNone},
	}
	for _, c := range cases {
		assert.Equal(t, c.expect, EncoderCommand(c.prev, c.value), "prev=%d value=%d", c.prev, c.value)
	}
}

func TestRawPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, RawPercent([]byte{0, 0}, DefaultHidScale))
	assert.Equal(t, 100, RawPercent([]byte{0x00, 0x20}, DefaultHidScale))
	assert.Equal(t, 50, RawPercent([]byte{0x00, 0x10, 0xff}, DefaultHidScale))
	assert.Equal(t, 1, RawPercent([]byte{41, 0}, DefaultHidScale)) // 0.5 rounds up
}

func TestKeyState(t *testing.T) {
	t.Parallel()

	pressed := PressedAbove(2000)
	var k KeyStateMachine
	samples := []int{0, 2500, 2600, 100, 2500, 0, 0, 3000}
	edges := make([]bool, len(samples))
	for i, pos := range samples {
		edges[i] = k.Update(pressed(pos))
	}
	assert.Equal(t, []bool{false, true, false, false, false, false, false, true}, edges)
	assert.Equal(t, KeyPressed, k.State)
	assert.Equal(t, "Pressed", k.State.String())
}

// one report per Read like hidraw
type reportReader struct{ reports [][]byte }

func (r *reportReader) Read(b []byte) (int, error) {
	if len(r.reports) == 0 {
		return 0, io.EOF
	}
	n := copy(b, r.reports[0])
	r.reports = r.reports[1:]
	return n, nil
}
func (r *reportReader) Close() error { return nil }

func report(percent int) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b, uint16(percent*DefaultHidScale/100))
	return b
}

func TestHidEncoder(t *testing.T) {
	t.Parallel()

	rr := &reportReader{reports: [][]byte{
		report(10),
		{0x01},     // short
		report(10), // unchanged
		report(45), // left
		report(65), // right
		report(73), // ok press
		report(74), // ok jitter while held
		report(73),
		report(10), // release
		report(10), // idle sample
		report(73), // ok again
	}}
	enc := NewHidEncoderReader(rr, 0)
	expect := []struct {
		analog int
		cmd    types.Command
	}{
		{10, types.CommandNone},
		{45, types.CommandLeft},
		{65, types.CommandRight},
		{73, types.CommandOk},
		{74, types.CommandNone},
		{73, types.CommandNone},
		{10, types.CommandNone},
		{73, types.CommandOk},
	}
	for i, x := range expect {
		e, err := enc.Read()
		require.NoError(t, err, "step=%d", i)
		assert.Equal(t, HidEncoderTag, e.Source)
		assert.Equal(t, x.analog, e.Analog, "step=%d", i)
		assert.Equal(t, x.cmd, e.Command, "step=%d analog=%d", i, e.Analog)
		assert.True(t, e.HasAnalog)
	}
	_, err := enc.Read()
	assert.Equal(t, io.EOF, err)
}

func evdev(code uint16, value inputevent.KeyEventState) []byte {
	ie := inputevent.InputEvent{Type: evKey, Code: code, Value: int32(value)}
	b := *(*[inputevent.EventSizeof]byte)(unsafe.Pointer(&ie))
	return b[:]
}

func TestDevInputEvent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	syn := inputevent.InputEvent{Type: 0}
	buf.Write((*(*[inputevent.EventSizeof]byte)(unsafe.Pointer(&syn)))[:])
	buf.Write(evdev(uint16(KeyRight), inputevent.KeyStateDown))
	buf.Write(evdev(uint16(KeyRight), inputevent.KeyStateHold))
	buf.Write(evdev(uint16(KeyRight), inputevent.KeyStateUp))
	buf.Write(evdev(uint16(KeyEnter), inputevent.KeyStateDown))
	buf.Write(evdev(30, inputevent.KeyStateDown)) // KEY_A unmapped
	src := NewDevInputEventReader(io.NopCloser(&buf), nil)

	e, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, types.CommandRight, e.Command)
	assert.False(t, e.Up)
	assert.False(t, e.HasAnalog)

	e, err = src.Read()
	require.NoError(t, err)
	assert.True(t, e.Up)
	assert.Equal(t, types.CommandNone, e.Command)

	e, err = src.Read()
	require.NoError(t, err)
	assert.Equal(t, types.CommandOk, e.Command)
	assert.Equal(t, KeyEnter, e.Key)

	e, err = src.Read()
	require.NoError(t, err)
	assert.Equal(t, types.CommandNone, e.Command)
	assert.Equal(t, types.InputKey(30), e.Key)

	_, err = src.Read()
	assert.Error(t, err)
}
