package ui

import (
	"context"
	"sync/atomic"

	"github.com/temoto/washpanel/internal/selection"
	"github.com/temoto/washpanel/internal/types"
)

//go:generate stringer -type=State -trimprefix=State
type State uint32

const (
	StateDefault State = iota

	StateBoot  // show intro ->Panel
	StatePanel // t=input/timeout +inputService=Diag +timeout=reset wizard
	StateDiag  // t=input/timeout +inputReturn/Service/timeout=Panel

	StateStop
)

func (self *UI) State() State       { return State(atomic.LoadUint32((*uint32)(&self.state))) }
func (self *UI) setState(new State) { atomic.StoreUint32((*uint32)(&self.state), uint32(new)) }

func (self *UI) Loop(ctx context.Context) {
	if !self.g.Alive.Add(1) {
		return
	}
	defer self.g.Alive.Done()
	next := StateDefault
	for next != StateStop && self.g.Alive.IsRunning() {
		current := self.State()
		next = self.enter(ctx, current)
		if next == StateDefault {
			self.g.Log.Fatalf("ui state=%s next=default", current.String())
		}
		self.exit(ctx, current, next)

		if !self.g.Alive.IsRunning() {
			self.g.Log.Debugf("ui Loop stopping because g.Alive")
			next = StateStop
		}

		self.setState(next)
		if self.XXX_testHook != nil {
			self.XXX_testHook(next)
		}
	}
	self.g.Log.Debugf("ui loop end")
}

func (self *UI) enter(ctx context.Context, s State) State {
	self.g.Log.Debugf("ui enter %s", s.String())
	switch s {
	case StateBoot:
		self.display.SetLines(self.config.Front.MsgIntro, self.g.BuildVersion)
		return StatePanel

	case StatePanel:
		return self.onPanel(ctx)

	case StateDiag:
		return self.onDiag(ctx)

	case StateStop:
		return StateStop

	default:
		self.g.Log.Fatalf("unhandled ui state=%s", s.String())
		return StateDefault
	}
}

func (self *UI) exit(ctx context.Context, current, next State) {
	self.g.Log.Debugf("ui exit %s -> %s", current.String(), next.String())

	if next == StateStop {
		self.display.SetLines(self.config.Front.MsgBye, "")
	}
}

func (self *UI) onPanel(ctx context.Context) State {
	self.renderPanel()
	for self.g.Alive.IsRunning() {
		e := self.wait(self.frontResetTimeout)
		switch e.Kind {
		case types.EventInput:
			if self.applyInput(e.Input) != selection.EffectNone || e.Input.HasAnalog {
				self.renderPanel()
			}

		case types.EventService:
			return StateDiag

		case types.EventTime:
			self.lastActivity.SetNow()
			if self.idle() {
				continue
			}
			self.g.Log.Infof("ui panel inactive, reset wizard")
			self.Machine.Reset()
			self.renderPanel()

		case types.EventStop:
			return StateStop
		}
	}
	return StateStop
}

func (self *UI) onDiag(ctx context.Context) State {
	self.lastActivity.SetNow()
	self.renderDiag()
	for self.g.Alive.IsRunning() {
		e := self.wait(self.diagResetTimeout)
		switch e.Kind {
		case types.EventInput:
			if e.Input.Command == types.CommandReturn {
				return StatePanel
			}
			self.renderDiag()

		case types.EventService, types.EventTime:
			return StatePanel

		case types.EventStop:
			return StateStop
		}
	}
	return StateStop
}

func (self *UI) applyInput(e types.InputEvent) selection.Effect {
	var effect selection.Effect
	switch e.Command {
	case types.CommandNone:
		return selection.EffectNone
	case types.CommandSelect:
		effect = self.Machine.SetIndex(e.Index)
	default:
		effect = self.Machine.Handle(e.Command)
	}
	self.g.Log.Debugf("ui input=%s effect=%s machine=%s", e.String(), effect.String(), self.Machine.String())
	return effect
}

// idle is true when wizard is at its initial state.
func (self *UI) idle() bool { return self.Machine.IsInitial() }
