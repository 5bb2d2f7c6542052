package ui

import (
	"fmt"

	"github.com/temoto/washpanel/internal/selection"
	"github.com/temoto/washpanel/internal/types"
	ui_config "github.com/temoto/washpanel/internal/ui/config"
)

const (
	DefaultArrowLeft  = "<"
	DefaultArrowRight = ">"
	DefaultSummarySep = ">"
	DefaultMsgIntro   = "washpanel"
	DefaultMsgBye     = "bye"
	DefaultDiagTitle  = "diag"
)

// Frame is everything renderers get on each change.
type Frame struct {
	View selection.View
	// Diag is true while service view is active, View is then stale
	Diag bool
	// last input event carrying analog value
	Telemetry types.InputEvent
	// last logged error, diag only
	Error  string
	L1, L2 string
}

type Renderer interface {
	Render(Frame)
}

type RenderFunc func(Frame)

func (f RenderFunc) Render(frame Frame) { f(frame) }

// TextLines renders wizard view into 2 text lines.
// Line 1: course summary of previous stages or stage hint.
// Line 2: "< title >" with disabled arrow at list end, "title:<option>" while editing.
func TextLines(v *selection.View, c *ui_config.Config) (string, string) {
	l1 := v.Summary(c.Front.SummarySep)
	if l1 == "" {
		l1 = v.Hint
	}

	card, ok := v.Current()
	if !ok {
		return l1, ""
	}
	left, right := c.Front.ArrowLeft, c.Front.ArrowRight
	if v.AtStart() {
		left = " "
	}
	if v.AtEnd() {
		right = " "
	}
	if v.Editing {
		return l1, fmt.Sprintf("%s:%s%s%s", card.DisplayTitle(), left, v.Options[v.Selected], right)
	}
	return l1, fmt.Sprintf("%s %s %s", left, card.DisplayTitle(), right)
}

func DiagLines(telemetry types.InputEvent, c *ui_config.Config) (string, string) {
	analog := "-"
	if telemetry.HasAnalog {
		analog = fmt.Sprint(telemetry.Analog)
	}
	return c.Diag.MsgTitle, fmt.Sprintf("analog=%s key=%s", analog, telemetry.Command.String())
}

func setDefaults(c *ui_config.Config) {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	def(&c.Front.ArrowLeft, DefaultArrowLeft)
	def(&c.Front.ArrowRight, DefaultArrowRight)
	def(&c.Front.SummarySep, DefaultSummarySep)
	def(&c.Front.MsgIntro, DefaultMsgIntro)
	def(&c.Front.MsgBye, DefaultMsgBye)
	def(&c.Diag.MsgTitle, DefaultDiagTitle)
}
