// Package selection is the wizard navigation state machine.
// Machine is not safe for concurrent use, UI loop is the single writer.
package selection

import (
	"fmt"

	"github.com/temoto/washpanel/internal/cards"
	"github.com/temoto/washpanel/internal/types"
)

type Mode uint8

const (
	ModeBrowsing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "Browsing"
	case ModeEditing:
		return "Editing"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Effect is observable result of one command.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectMove
	EffectEditBegin
	EffectEditChange
	EffectEditEnd
	EffectStageNext
	EffectStagePrev
)

var effectNames = [...]string{"None", "Move", "EditBegin", "EditChange", "EditEnd", "StageNext", "StagePrev"}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// Key identifies card across stages, ids are only unique within stage.
type Key struct {
	Stage int
	ID    int
}

type Machine struct {
	reg      *cards.Registry
	stage    int
	selected []int
	captured []string
	chosen   map[Key]cards.Option
	editing  bool
	cursor   int

	resetOptionsOnReturn bool
}

type Option func(*Machine)

// WithResetOptionsOnReturn makes Return drop option edits of the stage being left.
func WithResetOptionsOnReturn(v bool) Option {
	return func(m *Machine) { m.resetOptionsOnReturn = v }
}

func New(reg *cards.Registry, opts ...Option) *Machine {
	if reg == nil || reg.StageCount() == 0 {
		panic("code error selection.New registry empty")
	}
	self := &Machine{reg: reg}
	for _, o := range opts {
		o(self)
	}
	self.Reset()
	return self
}

// Reset returns to initial state: stage 0, all indices 0, nothing captured or chosen.
func (self *Machine) Reset() {
	n := self.reg.StageCount()
	self.stage = 0
	self.selected = make([]int, n)
	self.captured = make([]string, n)
	self.chosen = make(map[Key]cards.Option)
	self.editing = false
	self.cursor = 0
}

// IsInitial is true when nothing differs from state after Reset,
// including selections kept on stages left by Return.
func (self *Machine) IsInitial() bool {
	if self.stage != 0 || self.editing || self.cursor != 0 || len(self.chosen) != 0 {
		return false
	}
	for i := range self.selected {
		if self.selected[i] != 0 || self.captured[i] != "" {
			return false
		}
	}
	return true
}

func (self *Machine) Registry() *cards.Registry { return self.reg }
func (self *Machine) Stage() int                { return self.stage }
func (self *Machine) Selected() int             { return self.selected[self.stage] }
func (self *Machine) Editing() bool             { return self.editing }
func (self *Machine) Cursor() int               { return self.cursor }

func (self *Machine) Mode() Mode {
	if self.editing {
		return ModeEditing
	}
	return ModeBrowsing
}

// SelectedAt returns selected card index of any stage, retained while navigating back and forth.
func (self *Machine) SelectedAt(stage int) int {
	if stage < 0 || stage >= len(self.selected) {
		return 0
	}
	return self.selected[stage]
}

// Captured returns title recorded when advancing past stage, empty otherwise.
func (self *Machine) Captured(stage int) string {
	if stage < 0 || stage >= len(self.captured) {
		return ""
	}
	return self.captured[stage]
}

func (self *Machine) Chosen(stage, id int) (cards.Option, bool) {
	o, ok := self.chosen[Key{Stage: stage, ID: id}]
	return o, ok
}

func (self *Machine) ChosenMap() map[Key]cards.Option {
	m := make(map[Key]cards.Option, len(self.chosen))
	for k, v := range self.chosen {
		m[k] = v
	}
	return m
}

// Current returns selected card of active stage.
func (self *Machine) Current() cards.Card {
	c, _ := self.reg.Card(self.stage, self.Selected())
	return c
}

// CurrentOption returns option shown for current card: chosen one or first.
func (self *Machine) CurrentOption() (cards.Option, bool) {
	c := self.Current()
	if !c.HasOptions() {
		return "", false
	}
	if self.editing {
		return c.Options[self.cursor], true
	}
	if o, ok := self.Chosen(self.stage, c.ID); ok {
		return o, true
	}
	return c.Options[0], true
}

func (self *Machine) Handle(cmd types.Command) Effect {
	if self.editing {
		return self.handleEditing(cmd)
	}
	return self.handleBrowsing(cmd)
}

// SetIndex is index-change request, e.g. tap on card.
// Equivalent to repeated Left/Right until clamped target is reached.
func (self *Machine) SetIndex(target int) Effect {
	result := EffectNone
	for {
		var pos int
		if self.editing {
			pos = self.cursor
		} else {
			pos = self.Selected()
		}
		var cmd types.Command
		switch {
		case target < pos:
			cmd = types.CommandLeft
		case target > pos:
			cmd = types.CommandRight
		default:
			return result
		}
		e := self.Handle(cmd)
		if e == EffectNone {
			return result
		}
		result = e
	}
}

func (self *Machine) handleBrowsing(cmd types.Command) Effect {
	sel := self.selected[self.stage]
	last := self.reg.CardCount(self.stage) - 1
	switch cmd {
	case types.CommandLeft:
		if sel > 0 {
			self.selected[self.stage] = sel - 1
			return EffectMove
		}

	case types.CommandRight:
		if sel < last {
			self.selected[self.stage] = sel + 1
			return EffectMove
		}

	case types.CommandOk:
		c := self.Current()
		if c.Editable && c.HasOptions() {
			self.cursor = 0
			if o, ok := self.Chosen(self.stage, c.ID); ok {
				if i := c.OptionIndex(o); i >= 0 {
					self.cursor = i
				}
			}
			self.editing = true
			return EffectEditBegin
		}
		if c.Next && self.stage < self.reg.StageCount()-1 {
			self.captured[self.stage] = c.Title
			self.stage++
			return EffectStageNext
		}

	case types.CommandReturn:
		if self.stage > 0 {
			if self.resetOptionsOnReturn {
				self.dropChosen(self.stage)
			}
			self.stage--
			self.captured[self.stage] = ""
			return EffectStagePrev
		}
	}
	return EffectNone
}

func (self *Machine) handleEditing(cmd types.Command) Effect {
	c := self.Current()
	switch cmd {
	case types.CommandLeft:
		if self.cursor > 0 {
			self.cursor--
			self.chosen[Key{Stage: self.stage, ID: c.ID}] = c.Options[self.cursor]
			return EffectEditChange
		}

	case types.CommandRight:
		if self.cursor < len(c.Options)-1 {
			self.cursor++
			self.chosen[Key{Stage: self.stage, ID: c.ID}] = c.Options[self.cursor]
			return EffectEditChange
		}

	case types.CommandOk, types.CommandReturn:
		self.editing = false
		return EffectEditEnd
	}
	return EffectNone
}

func (self *Machine) dropChosen(stage int) {
	for k := range self.chosen {
		if k.Stage == stage {
			delete(self.chosen, k)
		}
	}
}

func (self *Machine) String() string {
	return fmt.Sprintf("selection(stage=%d selected=%d mode=%s cursor=%d)",
		self.stage, self.Selected(), self.Mode().String(), self.cursor)
}
