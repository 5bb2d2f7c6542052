package text_display

import (
	"fmt"
	"sync"
)

func NewMockTextDisplay(opt *TextDisplayConfig) (*TextDisplay, *MockDevicer) {
	dev := new(MockDevicer)
	display, err := NewTextDisplay(opt)
	if err != nil {
		panic(err)
	}
	display.dev = dev
	return display, dev
}

// MockDevicer remembers last write per row.
type MockDevicer struct {
	mu   sync.Mutex
	l1   []byte
	l2   []byte
	y, x uint8
}

func (self *MockDevicer) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.l1 = nil
	self.l2 = nil
}

func (self *MockDevicer) CursorYX(y, x uint8) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.y, self.x = y, x
	return true
}

func (self *MockDevicer) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	b = append([]byte(nil), b...)
	switch self.y {
	case 1:
		self.l1 = b
	case 2:
		self.l2 = b
	}
}

func (self *MockDevicer) String() string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return fmt.Sprintf("%s\n%s", string(self.l1), string(self.l2))
}
