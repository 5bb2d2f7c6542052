package ui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/washpanel/internal/cards"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/internal/ui"
)

func TestPanelWizard(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	env.start()

	env.requireDisplay(t, ui.DefaultMsgIntro, "test")
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	env.emit(types.CommandRight)
	env.requireDisplay(t, cards.HintSelect, "< 洗濯＋乾燥 >")
	env.emit(types.CommandRight)
	env.requireDisplay(t, cards.HintSelect, "< 乾燥のみ >")
	env.emit(types.CommandOk)
	env.requireDisplay(t, "乾燥のみ", "  おまかせ >")
	env.emit(types.CommandOk)
	env.requireDisplay(t, "乾燥のみ>おまかせ", "  洗剤 >")

	env.g.Hardware.Input.Emit(types.InputEvent{Source: "test", Command: types.CommandSelect, Index: 3})
	env.requireDisplay(t, "乾燥のみ>おまかせ", "< 洗い >")
	env.emit(types.CommandOk)
	env.requireDisplay(t, "乾燥のみ>おまかせ", "洗い: 自動>")
	for _, o := range []string{"1分", "2分", "3分"} {
		env.emit(types.CommandRight)
		env.requireDisplay(t, "乾燥のみ>おまかせ", "洗い:<"+o+">")
	}
	env.emit(types.CommandOk)
	env.requireDisplay(t, "乾燥のみ>おまかせ", "< 洗い >")
	f := env.requireFrame(t, func(f ui.Frame) bool {
		return f.View.Stage == 2 && !f.View.Editing && f.View.Options[3] == "3分"
	})
	assert.Equal(t, "< 洗い >", f.L2)
	assert.Equal(t, 3, f.View.Selected)

	env.emit(types.CommandReturn)
	env.requireDisplay(t, "乾燥のみ", "  おまかせ >")
	env.stop(t)
}

func TestPanelReturnOptions(t *testing.T) {
	t.Parallel()

	type Case struct {
		name   string
		conf   string
		expect string
	}
	cases := []Case{
		{"keep", "", "洗い:<3分>"},
		{"reset", `ui { selection { reset_options_on_return = true } }`, "洗い: 自動>"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			env := uiTestSetup(t, c.conf+`
cards {
	stage "mode" {
		hint = "mode"
		card "wash" { next = true }
	}
	stage "detail" {
		hint = "detail"
		card "洗い" { editable = true options = ["自動"] minutes = 5 }
	}
}`)
			env.start()
			env.requireDisplay(t, ui.DefaultMsgIntro, "test")
			env.requireDisplay(t, "mode", "  wash")
			env.emit(types.CommandOk)
			env.requireDisplay(t, "wash", "  洗い")
			env.emit(types.CommandOk)
			env.requireDisplay(t, "wash", "洗い: 自動>")
			for _, o := range []string{"1分", "2分", "3分"} {
				env.emit(types.CommandRight)
				env.requireDisplay(t, "wash", "洗い:<"+o+">")
			}
			env.emit(types.CommandReturn)
			env.requireDisplay(t, "wash", "  洗い")
			env.emit(types.CommandReturn)
			env.requireDisplay(t, "mode", "  wash")
			env.emit(types.CommandOk)
			env.requireDisplay(t, "wash", "  洗い")
			env.emit(types.CommandOk)
			env.requireDisplay(t, "wash", c.expect)
			env.stop(t)
		})
	}
}

func TestPanelIdleReset(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, `ui { front { reset_sec = 1 } }`)
	env.start()
	env.requireDisplay(t, ui.DefaultMsgIntro, "test")
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	env.emit(types.CommandRight)
	env.requireDisplay(t, cards.HintSelect, "< 洗濯＋乾燥 >")
	// no input for reset_sec
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	env.stop(t)
}

func TestPanelIdleResetAfterReturn(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, `ui { front { reset_sec = 1 } }`)
	env.start()
	env.requireDisplay(t, ui.DefaultMsgIntro, "test")
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	env.emit(types.CommandOk)
	env.requireDisplay(t, "洗濯のみ", "  おまかせ >")
	env.emit(types.CommandRight)
	env.requireDisplay(t, "洗濯のみ", "< わが家流 >")
	env.drainFrames()
	env.emit(types.CommandReturn)
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	// first stage 0 frame is from Return, second from idle reset
	seen := 0
	env.requireFrame(t, func(f ui.Frame) bool {
		if !f.Diag && f.View.Stage == 0 {
			seen++
		}
		return seen == 2
	})
	env.emit(types.CommandOk)
	env.requireDisplay(t, "洗濯のみ", "  おまかせ >")
	env.stop(t)
}

func TestDiag(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, `ui { diag { msg_title = "service" } }`)
	env.start()
	env.requireDisplay(t, ui.DefaultMsgIntro, "test")
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")

	env.g.Log.Errorf("hid-encoder read failed")
	env.emit(types.CommandService)
	env.requireDisplay(t, "service", "analog=- key=None")
	f := env.requireFrame(t, func(f ui.Frame) bool { return f.Diag })
	assert.Equal(t, "hid-encoder read failed", f.Error)
	env.g.Hardware.Input.Emit(types.InputEvent{Source: "hid-encoder", Command: types.CommandLeft, Analog: 45, HasAnalog: true})
	env.requireDisplay(t, "service", "analog=45 key=Left")
	f = env.requireFrame(t, func(f ui.Frame) bool { return f.Diag && f.Telemetry.Analog == 45 })
	assert.Equal(t, types.CommandLeft, f.Telemetry.Command)
	// navigation while in diag does not reach wizard
	env.emit(types.CommandReturn)
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	env.stop(t)
}

func TestDiagNotify(t *testing.T) {
	t.Parallel()

	env := uiTestSetup(t, "")
	env.start()
	env.requireDisplay(t, ui.DefaultMsgIntro, "test")
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	assert.False(t, env.ui.LastFrame().Diag)
	env.ui.Notify(types.Event{Kind: types.EventService})
	env.requireDisplay(t, ui.DefaultDiagTitle, "analog=- key=None")
	assert.True(t, env.ui.LastFrame().Diag)
	assert.True(t, env.ui.IdleFor() < testTimeout)
	env.ui.Notify(types.Event{Kind: types.EventService})
	env.requireDisplay(t, cards.HintSelect, "  洗濯のみ >")
	env.stop(t)
}
