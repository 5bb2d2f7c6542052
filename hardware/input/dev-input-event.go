package input

import (
	"io"
	"os"

	"github.com/temoto/inputevent-go"
	"github.com/temoto/washpanel/internal/types"
)

const DevInputEventTag = "dev-input-event"

// linux/input-event-codes.h
const (
	evKey = 0x01

	KeyEsc       types.InputKey = 1
	KeyBackspace types.InputKey = 14
	KeyEnter     types.InputKey = 28
	KeyF1        types.InputKey = 59
	KeyKPEnter   types.InputKey = 96
	KeyLeft      types.InputKey = 105
	KeyRight     types.InputKey = 106
)

// DefaultKeymap: arrows navigate, Enter confirms, Backspace/Esc go back.
func DefaultKeymap() map[types.InputKey]types.Command {
	return map[types.InputKey]types.Command{
		KeyLeft:      types.CommandLeft,
		KeyRight:     types.CommandRight,
		KeyEnter:     types.CommandOk,
		KeyKPEnter:   types.CommandOk,
		KeyBackspace: types.CommandReturn,
		KeyEsc:       types.CommandReturn,
		KeyF1:        types.CommandService,
	}
}

type DevInputEventSource struct {
	f      io.ReadCloser
	keymap map[types.InputKey]types.Command
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func (self *DevInputEventSource) String() string { return DevInputEventTag }

func NewDevInputEventSource(device string, keymap map[types.InputKey]types.Command) (*DevInputEventSource, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, err
	}
	return NewDevInputEventReader(f, keymap), nil
}

func NewDevInputEventReader(r io.ReadCloser, keymap map[types.InputKey]types.Command) *DevInputEventSource {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &DevInputEventSource{f: r, keymap: keymap}
}

func (self *DevInputEventSource) Close() error { return self.f.Close() }

// Read skips non-key events and key repeat.
// Command is set on key down only, key up is passed for completeness.
func (self *DevInputEventSource) Read() (types.InputEvent, error) {
	for {
		ie, err := inputevent.ReadOne(self.f)
		if err != nil {
			return types.InputEvent{}, err
		}
		if ie.Type != evKey || ie.Value == int32(inputevent.KeyStateHold) {
			continue
		}
		key := types.InputKey(ie.Code)
		ev := types.InputEvent{
			Source: DevInputEventTag,
			Key:    key,
			Up:     ie.Value == int32(inputevent.KeyStateUp),
		}
		if !ev.Up {
			ev.Command = self.keymap[key]
		}
		return ev, nil
	}
}
