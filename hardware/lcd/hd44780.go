// Package lcd is HD44780 character display driver, 4-bit bus over GPIO chardev.
package lcd

import (
	"strconv"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/gpio-cdev-go"
)

type Command byte

const (
	CommandClear   Command = 0x01
	CommandReturn  Command = 0x02
	CommandControl Command = 0x08
	CommandAddress Command = 0x80
)

type Control byte

const (
	ControlOn         Control = 0x04
	ControlUnderscore Control = 0x02
	ControlBlink      Control = 0x01
)
const ddramWidth = 0x40

const (
	DefaultWidth = 16
	MaxWidth     = 40
)

const DefaultChip = "/dev/gpiochip0"

type PinMap struct {
	RS string `hcl:"rs"`
	RW string `hcl:"rw"`
	E  string `hcl:"e"`
	D4 string `hcl:"d4"`
	D5 string `hcl:"d5"`
	D6 string `hcl:"d6"`
	D7 string `hcl:"d7"`
}

type Config struct {
	Enable   bool   `hcl:"enable"`
	Chip     string `hcl:"chip"`
	Codepage string `hcl:"codepage"`
	Page1    bool   `hcl:"page1"`
	PinMap   PinMap `hcl:"pinmap"`
	// Columns per row, cursor addressing refuses anything beyond.
	Width          int  `hcl:"width"`
	ScrollDelayMs  int  `hcl:"scroll_delay_ms"`
	ControlCursor  bool `hcl:"control_cursor"`
	ControlBlink   bool `hcl:"control_blink"`
	InitDelayMilli int  `hcl:"init_delay_ms"`
}

type LCD struct {
	mu      sync.Mutex
	control Control
	width   uint8
	chip    gpio.Chiper
	pins    gpio.Lineser
	pin_rs  gpio.LineSetFunc // command/data, aliases: A0, RS
	pin_rw  gpio.LineSetFunc // read/write
	pin_e   gpio.LineSetFunc // enable
	pin_d4  gpio.LineSetFunc
	pin_d5  gpio.LineSetFunc
	pin_d6  gpio.LineSetFunc
	pin_d7  gpio.LineSetFunc
}

// Open gpio chip from config and initialize display.
func Open(c *Config) (*LCD, error) {
	name := c.Chip
	if name == "" {
		name = DefaultChip
	}
	chip, err := gpio.Open(name, "lcd")
	if err != nil {
		return nil, errors.Annotatef(err, "lcd gpio open chip=%s", name)
	}
	self, err := New(chip, c)
	if err != nil {
		chip.Close()
		return nil, err
	}
	return self, nil
}

func New(chip gpio.Chiper, c *Config) (*LCD, error) {
	width, err := c.ValidWidth()
	if err != nil {
		return nil, err
	}
	pins, err := c.PinMap.Lines()
	if err != nil {
		return nil, err
	}
	self := &LCD{chip: chip, width: uint8(width)}
	self.pins, err = chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, "lcd", pins[:]...)
	if err != nil {
		return nil, errors.Annotatef(err, "lcd open lines=%v", pins)
	}
	self.pin_rs = self.pins.SetFunc(pins[0])
	self.pin_rw = self.pins.SetFunc(pins[1])
	self.pin_e = self.pins.SetFunc(pins[2])
	self.pin_d4 = self.pins.SetFunc(pins[3])
	self.pin_d5 = self.pins.SetFunc(pins[4])
	self.pin_d6 = self.pins.SetFunc(pins[5])
	self.pin_d7 = self.pins.SetFunc(pins[6])

	control := ControlOn
	if c.ControlCursor {
		control |= ControlUnderscore
	}
	if c.ControlBlink {
		control |= ControlBlink
	}
	initDelay := time.Duration(c.InitDelayMilli) * time.Millisecond
	if initDelay == 0 {
		initDelay = 20 * time.Millisecond
	}
	self.init4(c.Page1, control, initDelay)
	return self, nil
}

// ValidWidth returns configured columns, 0 means DefaultWidth.
func (c *Config) ValidWidth() (int, error) {
	switch {
	case c.Width == 0:
		return DefaultWidth, nil
	case c.Width < 0 || c.Width > MaxWidth:
		return 0, errors.NotValidf("lcd width=%d max=%d", c.Width, MaxWidth)
	}
	return c.Width, nil
}

// Lines returns gpio line offsets in RS,RW,E,D4..D7 order.
func (pm PinMap) Lines() ([7]uint32, error) {
	var result [7]uint32
	for i, s := range []string{pm.RS, pm.RW, pm.E, pm.D4, pm.D5, pm.D6, pm.D7} {
		x, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return result, errors.NotValidf("lcd pinmap %d=%q", i, s)
		}
		result[i] = uint32(x)
	}
	return result, nil
}

func (self *LCD) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	errs := make([]error, 0, 2)
	if self.pins != nil {
		errs = append(errs, self.pins.Close())
	}
	if self.chip != nil {
		errs = append(errs, self.chip.Close())
	}
	for _, e := range errs {
		if e != nil {
			return errors.Annotate(e, "lcd close")
		}
	}
	return nil
}

func (self *LCD) setAllPins(b byte) {
	self.pin_rs(b)
	self.pin_rw(b)
	self.pin_e(b)
	self.pin_d4(b)
	self.pin_d5(b)
	self.pin_d6(b)
	self.pin_d7(b)
	_ = self.pins.Flush()
}

func (self *LCD) blinkE() {
	self.pin_e(1)
	_ = self.pins.Flush()
	time.Sleep(1 * time.Microsecond)
	self.pin_e(0)
	_ = self.pins.Flush()
	time.Sleep(1 * time.Microsecond)
}

func (self *LCD) send4(rs, d4, d5, d6, d7 byte) {
	self.pin_rs(rs)
	self.pin_d4(d4)
	self.pin_d5(d5)
	self.pin_d6(d6)
	self.pin_d7(d7)
	self.blinkE()
}

func (self *LCD) init4(page1 bool, control Control, delay time.Duration) {
	time.Sleep(delay)

	// special sequence
	self.command(0x33)
	self.command(0x32)

	self.setFunction(false, page1)
	self.setControl(0) // off
	self.setControl(control)
	self.clear()
	self.setEntryMode(true, false)
}

func bb(b, bit byte) byte {
	if b&(1<<bit) == 0 {
		return 0
	}
	return 1
}

func (self *LCD) command(c Command) {
	b := byte(c)
	self.send4(0, bb(b, 4), bb(b, 5), bb(b, 6), bb(b, 7))
	self.send4(0, bb(b, 0), bb(b, 1), bb(b, 2), bb(b, 3))
	// TODO poll busy flag, needs RW line switched to input
	time.Sleep(40 * time.Microsecond)
	self.setAllPins(0)
}

func (self *LCD) data(b byte) {
	self.send4(1, bb(b, 4), bb(b, 5), bb(b, 6), bb(b, 7))
	self.send4(1, bb(b, 0), bb(b, 1), bb(b, 2), bb(b, 3))
	time.Sleep(40 * time.Microsecond)
	self.setAllPins(0)
}

func (self *LCD) Command(c Command) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.command(c)
}

func (self *LCD) Write(bs []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	for _, b := range bs {
		self.data(b)
	}
}

func (self *LCD) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.clear()
}

func (self *LCD) clear() {
	self.command(CommandClear)
	time.Sleep(2 * time.Millisecond)
}

func (self *LCD) Return() { self.Command(CommandReturn) }

func (self *LCD) setEntryMode(right, shift bool) {
	var cmd Command = 0x04
	if right {
		cmd |= 0x02
	}
	if shift {
		cmd |= 0x01
	}
	self.command(cmd)
}

func (self *LCD) Control() Control {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.control
}
func (self *LCD) SetControl(new Control) Control {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.setControl(new)
}
func (self *LCD) setControl(new Control) Control {
	old := self.control
	self.control = new
	self.command(CommandControl | Command(new))
	return old
}

func (self *LCD) setFunction(bits8, page1 bool) {
	var cmd Command = 0x28
	if bits8 {
		cmd |= 0x10
	}
	if page1 {
		cmd |= 0x02
	}
	self.command(cmd)
}

// CursorYX is 1-based.
func (self *LCD) CursorYX(row uint8, column uint8) bool {
	if !(row > 0 && row <= 2) {
		return false
	}
	if !(column > 0 && column <= self.width) {
		return false
	}
	addr := (row-1)*ddramWidth + (column - 1)
	self.Command(CommandAddress | Command(addr))
	return true
}
