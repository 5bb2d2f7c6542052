package input

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/washpanel/internal/types"
)

const HidEncoderTag = "hid-encoder"

const (
	DefaultHidVendor  = 0x1209
	DefaultHidProduct = 0x0001
	DefaultHidScale   = 8192
	hidReportMax      = 64
	// middle range direction is decided by delta bigger than this
	encoderDirectionDiff = 2
)

// Percent ranges of rotary encoder with push buttons, lower bound exclusive.
type EncoderRange struct {
	Lo, Hi  int
	Command types.Command
}

func (r EncoderRange) Contains(v int) bool { return v > r.Lo && v <= r.Hi }

var (
	rangeReturn    = EncoderRange{32, 38, types.CommandReturn}
	rangeLeft      = EncoderRange{42, 48, types.CommandLeft}
	rangeDirection = EncoderRange{48, 54, types.CommandNone}
	rangeRight     = EncoderRange{60, 67, types.CommandRight}
	rangeOk        = EncoderRange{70, 77, types.CommandOk}
)

// EncoderCommand converts encoder position change to command.
// prev=-1 means unknown previous position.
func EncoderCommand(prev, value int) types.Command {
	switch {
	case rangeReturn.Contains(value):
		return types.CommandReturn
	case rangeLeft.Contains(value):
		return types.CommandLeft
	case rangeDirection.Contains(value):
		if prev+encoderDirectionDiff < value {
			return types.CommandRight
		} else if prev-encoderDirectionDiff > value {
			return types.CommandLeft
		}
		return types.CommandNone
	case rangeRight.Contains(value):
		return types.CommandRight
	case rangeOk.Contains(value):
		return types.CommandOk
	}
	return types.CommandNone
}

// RawPercent maps 16 bit little endian report value into 0-100 with scale as 100%.
func RawPercent(report []byte, scale int) int {
	raw := binary.LittleEndian.Uint16(report[:2])
	return int(math.Round(float64(raw) / float64(scale) * 100))
}

type HidEncoderConfig struct {
	Device  string
	Vendor  uint16
	Product uint16
	Scale   int
}

// HidEncoder reads hidraw reports of panel rotary encoder.
// Every position change is emitted with Analog set (diag telemetry),
// buttons fire once per press.
type HidEncoder struct {
	r     io.ReadCloser
	scale int
	buf   [hidReportMax]byte
	last  int
	ok    KeyStateMachine
	ret   KeyStateMachine
}

var _ Source = new(HidEncoder)

func NewHidEncoder(c HidEncoderConfig) (*HidEncoder, error) {
	f, err := os.Open(c.Device)
	if err != nil {
		return nil, errors.Annotatef(err, "%s open device=%s", HidEncoderTag, c.Device)
	}
	if c.Vendor != 0 || c.Product != 0 {
		info, err := hidrawInfo(f)
		if err != nil {
			f.Close()
			return nil, errors.Annotatef(err, "%s device=%s", HidEncoderTag, c.Device)
		}
		if info.Vendor != c.Vendor || info.Product != c.Product {
			f.Close()
			return nil, errors.NotValidf("%s device=%s id=%s expected=%04x:%04x",
				HidEncoderTag, c.Device, info.String(), c.Vendor, c.Product)
		}
	}
	return NewHidEncoderReader(f, c.Scale), nil
}

func NewHidEncoderReader(r io.ReadCloser, scale int) *HidEncoder {
	if scale <= 0 {
		scale = DefaultHidScale
	}
	return &HidEncoder{r: r, scale: scale, last: -1}
}

func (self *HidEncoder) String() string { return HidEncoderTag }
func (self *HidEncoder) Close() error   { return self.r.Close() }

func (self *HidEncoder) Read() (types.InputEvent, error) {
	for {
		n, err := self.r.Read(self.buf[:])
		if err != nil {
			return types.InputEvent{}, err
		}
		if n < 2 {
			continue
		}
		value := RawPercent(self.buf[:n], self.scale)
		okEdge := self.ok.Update(rangeOk.Contains(value))
		retEdge := self.ret.Update(rangeReturn.Contains(value))
		if value == self.last {
			continue
		}

		prev := self.last
		self.last = value
		cmd := EncoderCommand(prev, value)
		switch {
		case cmd == types.CommandOk && !okEdge:
			cmd = types.CommandNone
		case cmd == types.CommandReturn && !retEdge:
			cmd = types.CommandNone
		}
		return types.InputEvent{Source: HidEncoderTag, Command: cmd, Analog: value, HasAnalog: true}, nil
	}
}

type HidrawInfo struct {
	Bus     uint32
	Vendor  uint16
	Product uint16
}

func (i HidrawInfo) String() string {
	return fmt.Sprintf("%04x:%04x bus=%d", i.Vendor, i.Product, i.Bus)
}
