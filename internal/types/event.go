package types

import (
	"fmt"
	"strings"
)

//go:generate stringer -type=EventKind -trimprefix=Event
type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventInput
	EventTime
	EventService
	EventStop
)

type Event struct {
	Input InputEvent
	Kind  EventKind
}

func (e *Event) String() string {
	inner := ""
	if e.Kind == EventInput {
		inner = " " + e.Input.String()
	}
	return fmt.Sprintf("Event(%s%s)", e.Kind.String(), inner)
}

// Command is abstract navigation input, independent of physical source.
type Command uint8

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandOk
	CommandReturn
	// CommandSelect is index-change request, target in InputEvent.Index
	CommandSelect
	// CommandService switches between panel and diag views
	CommandService
)

var commandNames = [...]string{"None", "Left", "Right", "Ok", "Return", "Select", "Service"}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// IsNavigation reports commands handled by selection machine.
func (c Command) IsNavigation() bool { return c >= CommandLeft && c <= CommandSelect }

// ParseCommand accepts command names and browser/terminal key names.
// Unrecognized input returns CommandNone.
func ParseCommand(s string) Command {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "arrowleft":
		return CommandLeft
	case "right", "arrowright":
		return CommandRight
	case "ok", "enter":
		return CommandOk
	case "return", "back", "backspace", "esc", "escape":
		return CommandReturn
	case "select":
		return CommandSelect
	case "service", "diag":
		return CommandService
	}
	return CommandNone
}

type InputKey uint16

type InputEvent struct {
	Source  string
	Key     InputKey
	Up      bool
	Command Command
	// Index is target for CommandSelect
	Index int
	// Analog is debug telemetry from analog sources, valid with HasAnalog
	Analog    int
	HasAnalog bool
}

func (e *InputEvent) IsZero() bool { return e.Command == CommandNone && e.Key == 0 && !e.HasAnalog }

func (e *InputEvent) String() string {
	s := fmt.Sprintf("source=%s cmd=%s", e.Source, e.Command.String())
	if e.Key != 0 {
		s += fmt.Sprintf(" key=%d up=%t", e.Key, e.Up)
	}
	if e.Command == CommandSelect {
		s += fmt.Sprintf(" index=%d", e.Index)
	}
	if e.HasAnalog {
		s += fmt.Sprintf(" analog=%d", e.Analog)
	}
	return s
}

// NewCommandEvent is shortcut for sources without key codes or analog values.
func NewCommandEvent(source string, c Command) InputEvent {
	return InputEvent{Source: source, Command: c}
}
