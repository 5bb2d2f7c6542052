// Package ui runs card wizard: input events from dispatch go into selection
// machine, resulting view is rendered to text display and extra renderers.
package ui

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/washpanel/hardware/text_display"
	"github.com/temoto/washpanel/helpers"
	"github.com/temoto/washpanel/helpers/atomic_clock"
	"github.com/temoto/washpanel/internal/selection"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/internal/types"
	ui_config "github.com/temoto/washpanel/internal/ui/config"
)

const (
	InputName = "ui"

	DefaultFrontResetTimeout = 5 * time.Minute
	DefaultDiagResetTimeout  = 1 * time.Minute
)

type UI struct { //nolint:maligned
	Machine *selection.Machine

	config       *ui_config.Config
	g            *state.Global
	state        State
	display      *text_display.TextDisplay
	lastActivity atomic_clock.Clock
	telemetry    types.InputEvent
	eventch      chan types.Event
	inputch      chan types.InputEvent

	rmu       sync.Mutex
	renderers []Renderer
	lastFrame atomic.Value // Frame
	lastError atomic.Value // string

	frontResetTimeout time.Duration
	diagResetTimeout  time.Duration

	XXX_testHook func(State)
}

func (self *UI) Init(ctx context.Context) error {
	self.g = state.GetGlobal(ctx)
	if self.g.Registry == nil {
		return errors.Errorf("code error ui.Init before state.Global.Init")
	}
	self.config = &self.g.Config.UI
	setDefaults(self.config)
	self.setState(StateBoot)

	self.Machine = selection.New(self.g.Registry,
		selection.WithResetOptionsOnReturn(self.config.Selection.ResetOptionsOnReturn))

	self.display = self.g.MustTextDisplay()
	self.telemetry = types.InputEvent{}
	self.lastActivity.SetNow()
	self.eventch = make(chan types.Event)
	self.inputch = self.g.Hardware.Input.SubscribeChan(InputName, self.g.Alive.StopChan())
	if err := self.g.Hardware.Input.Focus(InputName); err != nil {
		return errors.Annotate(err, "ui.Init")
	}

	self.g.Log.SetErrorFunc(func(err error) { self.lastError.Store(err.Error()) })

	self.frontResetTimeout = helpers.IntSecondDefault(self.config.Front.ResetTimeoutSec, DefaultFrontResetTimeout)
	self.diagResetTimeout = helpers.IntSecondDefault(self.config.Diag.ResetTimeoutSec, DefaultDiagResetTimeout)
	return nil
}

// AddRenderer receives every frame after text display.
// Render runs on UI goroutine and must not block.
func (self *UI) AddRenderer(r Renderer) {
	self.rmu.Lock()
	defer self.rmu.Unlock()
	self.renderers = append(self.renderers, r)
}

// IdleFor is time since last command or notification, safe from any goroutine.
func (self *UI) IdleFor() time.Duration { return atomic_clock.Since(&self.lastActivity) }

// LastFrame is safe from any goroutine, zero Frame before first render.
func (self *UI) LastFrame() Frame {
	f, _ := self.lastFrame.Load().(Frame)
	return f
}

// Notify feeds non-input event into UI loop, e.g. EventTime from tests or EventService from signal.
func (self *UI) Notify(e types.Event) {
	select {
	case self.eventch <- e:
	case <-self.g.Alive.StopChan():
	}
}

// wait timeout counts from last activity, analog telemetry does not extend it.
func (self *UI) wait(timeout time.Duration) types.Event {
	tmr := time.NewTimer(atomic_clock.Remaining(&self.lastActivity, timeout))
	defer tmr.Stop()
	select {
	case e := <-self.eventch:
		if e.Kind != types.EventInvalid {
			self.lastActivity.SetNow()
		}
		return e

	case e, ok := <-self.inputch:
		if !ok {
			return types.Event{Kind: types.EventStop}
		}
		if e.HasAnalog {
			self.telemetry = e
		}
		if e.Command != types.CommandNone {
			self.lastActivity.SetNow()
		}
		if e.Command == types.CommandService {
			return types.Event{Kind: types.EventService, Input: e}
		}
		return types.Event{Kind: types.EventInput, Input: e}

	case <-tmr.C:
		return types.Event{Kind: types.EventTime}

	case <-self.g.Alive.StopChan():
		return types.Event{Kind: types.EventStop}
	}
}

func (self *UI) publish(f Frame) {
	self.lastFrame.Store(f)
	self.display.SetLines(f.L1, f.L2)
	self.rmu.Lock()
	rs := self.renderers
	self.rmu.Unlock()
	for _, r := range rs {
		r.Render(f)
	}
}

func (self *UI) renderPanel() {
	v := self.Machine.Snapshot()
	f := Frame{View: v, Telemetry: self.telemetry}
	f.L1, f.L2 = TextLines(&v, self.config)
	self.publish(f)
}

func (self *UI) renderDiag() {
	f := Frame{View: self.Machine.Snapshot(), Diag: true, Telemetry: self.telemetry}
	f.Error, _ = self.lastError.Load().(string)
	f.L1, f.L2 = DiagLines(self.telemetry, self.config)
	self.publish(f)
}
