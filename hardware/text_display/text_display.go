// Package text_display drives 2-line character displays:
// codepage translation, padding and horizontal scroll of long lines.
package text_display

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/alive/v2"
	"github.com/temoto/washpanel/log2"
)

const MaxWidth = 40

var spaceBytes = bytes.Repeat([]byte{' '}, MaxWidth)

type TextDisplay struct { //nolint:maligned
	alive *alive.Alive
	mu    sync.Mutex
	dev   Devicer
	log   *log2.Log
	tr    atomic.Value
	width uint32
	state State
	text  [2]string

	tickd time.Duration
	tick  uint32
	upd   chan<- State
}

type TextDisplayConfig struct {
	Codepage    string
	ScrollDelay time.Duration
	Width       uint32
	Log         *log2.Log
}

type Devicer interface {
	Clear()
	CursorYX(y, x uint8) bool
	Write(b []byte)
}

func NewTextDisplay(opt *TextDisplayConfig) (*TextDisplay, error) {
	if opt == nil {
		opt = &TextDisplayConfig{}
	}
	width := opt.Width
	if width == 0 {
		width = 16
	}
	if width > MaxWidth {
		return nil, errors.NotValidf("text display width=%d max=%d", width, MaxWidth)
	}
	self := &TextDisplay{
		alive: alive.NewAlive(),
		log:   opt.Log,
		tickd: opt.ScrollDelay,
		width: width,
	}

	if opt.Codepage != "" {
		if err := self.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Annotatef(err, "text display codepage=%s", opt.Codepage)
		}
	}

	return self, nil
}

func (self *TextDisplay) SetCodepage(cp string) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	self.tr.Store(tr)
	return nil
}
func (self *TextDisplay) SetDevice(dev Devicer) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.dev = dev
}

func (self *TextDisplay) Width() uint32 { return atomic.LoadUint32(&self.width) }

func (self *TextDisplay) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.state.Clear()
	self.text = [2]string{}
	if self.dev != nil {
		self.dev.Clear()
	}
	self.flush()
}

// Message shows s1,s2 while wait() runs, then restores previous content.
func (self *TextDisplay) Message(s1, s2 string, wait func()) {
	next := State{
		L1: self.Translate(s1),
		L2: self.Translate(s2),
	}

	self.mu.Lock()
	prev := self.state
	self.state = next
	atomic.StoreUint32(&self.tick, 0)
	self.flush()
	self.mu.Unlock()

	wait()

	self.mu.Lock()
	self.state = prev
	self.flush()
	self.mu.Unlock()
}

// nil: don't change
// len=0: set empty
func (self *TextDisplay) SetLinesBytes(b1, b2 []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if b1 != nil {
		self.state.L1 = b1
	}
	if b2 != nil {
		self.state.L2 = b2
	}
	atomic.StoreUint32(&self.tick, 0)
	self.flush()
}

// SetLines skips device IO when text is unchanged, keeps scroll position then.
func (self *TextDisplay) SetLines(line1, line2 string) {
	self.mu.Lock()
	same := self.text[0] == line1 && self.text[1] == line2
	self.text = [2]string{line1, line2}
	self.mu.Unlock()
	if same {
		return
	}
	self.log.Debugf("display l1=%q l2=%q", line1, line2)
	self.SetLinesBytes(
		self.Translate(line1),
		self.Translate(line2))
}

func (self *TextDisplay) Tick() {
	self.mu.Lock()
	defer self.mu.Unlock()

	atomic.AddUint32(&self.tick, 1)
	self.flush()
}

// Run scrolls long lines until Stop.
func (self *TextDisplay) Run() {
	self.mu.Lock()
	delay := self.tickd
	self.mu.Unlock()
	if delay == 0 {
		return
	}
	if !self.alive.Add(1) {
		return
	}
	defer self.alive.Done()
	tmr := time.NewTicker(delay)
	defer tmr.Stop()
	stopch := self.alive.StopChan()

	for {
		select {
		case <-tmr.C:
			self.Tick()
		case <-stopch:
			return
		}
	}
}

func (self *TextDisplay) Alive() *alive.Alive { return self.alive }

func (self *TextDisplay) Stop() {
	self.alive.Stop()
	self.alive.Wait()
}

// sometimes returns slice into shared spaceBytes
// sometimes returns `b` (len>=width-1)
// sometimes allocates new buffer
func (self *TextDisplay) JustCenter(b []byte) []byte {
	l := len(b)
	w := int(atomic.LoadUint32(&self.width))

	// optimize short paths
	if l == 0 {
		return spaceBytes[:w]
	}
	if l >= w-1 {
		return b
	}
	padtotal := w - l
	n := padtotal / 2
	padleft := spaceBytes[:n]
	padright := spaceBytes[:n+padtotal%2] // account for odd length
	buf := make([]byte, 0, w)
	buf = append(append(append(buf, padleft...), b...), padright...)
	return buf
}

// returns `b` when len>=width
// otherwise pads with spaces
func (self *TextDisplay) PadRight(b []byte) []byte {
	return PadSpace(b, self.Width())
}

// Translate converts to display codepage.
// Pads by default, trailing \x00 marks place for cursor and disables padding.
func (self *TextDisplay) Translate(s string) []byte {
	if len(s) == 0 {
		return spaceBytes[:0]
	}

	pad := true
	if s[len(s)-1] == '\x00' {
		pad = false
		s = s[:len(s)-1]
	}

	result := []byte(s)
	tr, ok := self.tr.Load().(charset.Translator)
	if ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			self.log.Errorf("display translate s=%q err=%v", s, err)
		} else {
			// translator reuses single internal buffer, make a copy
			result = append([]byte(nil), tb...)
		}
	}

	if pad {
		result = self.PadRight(result)
	}
	return result
}

func (self *TextDisplay) SetUpdateChan(ch chan<- State) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.upd = ch
}

func (self *TextDisplay) State() State {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.state.Copy()
}

// mu must be held
func (self *TextDisplay) flush() {
	if self.upd != nil {
		self.upd <- self.state.Copy()
	}
	if self.dev == nil {
		return
	}

	var buf1 [MaxWidth]byte
	var buf2 [MaxWidth]byte
	b1 := buf1[:self.width]
	b2 := buf2[:self.width]
	tick := atomic.LoadUint32(&self.tick)
	n1 := scrollWrap(b1, self.state.L1, tick)
	n2 := scrollWrap(b2, self.state.L2, tick)

	// rewrite without clear, looks smoother
	// no padding: "erase" modified area, for now - whole line
	if n1 < self.width {
		self.dev.CursorYX(1, 1)
		self.dev.Write(spaceBytes[:self.width])
	}
	if len(self.state.L1) > 0 {
		self.dev.CursorYX(1, 1)
		self.dev.Write(b1[:n1])
	}
	if n2 < self.width {
		self.dev.CursorYX(2, 1)
		self.dev.Write(spaceBytes[:self.width])
	}
	if len(self.state.L2) > 0 {
		self.dev.CursorYX(2, 1)
		self.dev.Write(b2[:n2])
	}
}

type State struct {
	L1, L2 []byte
}

func (s *State) Clear() {
	s.L1 = nil
	s.L2 = nil
}

func (s State) Copy() State {
	return State{
		L1: append([]byte(nil), s.L1...),
		L2: append([]byte(nil), s.L2...),
	}
}

func (s State) Format(width uint32) string {
	return fmt.Sprintf("%s\n%s",
		PadSpace(s.L1, width),
		PadSpace(s.L2, width),
	)
}

func (s State) String() string {
	return fmt.Sprintf("%s\n%s", s.L1, s.L2)
}

func PadSpace(b []byte, width uint32) []byte {
	l := uint32(len(b))

	if l == 0 {
		return spaceBytes[:width]
	}
	if l >= width {
		return b
	}
	buf := make([]byte, 0, width)
	buf = append(append(buf, b...), spaceBytes[:width-l]...)
	return buf
}

// relies that len(buf) == display width
func scrollWrap(buf []byte, content []byte, tick uint32) uint32 {
	length := uint32(len(content))
	width := uint32(len(buf))
	gap := width / 2
	n := 0
	if length <= width {
		n = copy(buf, content)
		copy(buf[n:], spaceBytes)
		return uint32(n)
	}

	offset := tick % (length + gap)
	if offset < length {
		n = copy(buf, content[offset:])
	} else {
		gap = gap - (offset - length)
	}
	n += copy(buf[n:], spaceBytes[:gap])
	n += copy(buf[n:], content[0:])
	return uint32(n)
}
