package ui_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/temoto/washpanel/hardware/text_display"
	state_new "github.com/temoto/washpanel/internal/state/new"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/internal/ui"
)

const testTimeout = 5 * time.Second

type tenv struct {
	ctx            context.Context
	g              *state.Global
	ui             *ui.UI
	display        *text_display.TextDisplay
	displayUpdated chan text_display.State
	frames         chan ui.Frame
}

func uiTestSetup(t testing.TB, conf string) *tenv {
	ctx, g, _ := state_new.NewTestContext(t, conf)
	env := &tenv{
		ctx:    ctx,
		g:      g,
		frames: make(chan ui.Frame, 64),
	}
	env.display = g.MustTextDisplay()
	env.ui = &ui.UI{
		XXX_testHook: func(s ui.State) {
			t.Logf("testHook %s", s.String())
		},
	}
	require.NoError(t, env.ui.Init(ctx))
	env.ui.AddRenderer(ui.RenderFunc(func(f ui.Frame) {
		select {
		case env.frames <- f:
		default:
		}
	}))
	env.displayUpdated = make(chan text_display.State)
	env.display.SetUpdateChan(env.displayUpdated)
	return env
}

func (env *tenv) start() { go env.ui.Loop(env.ctx) }

func (env *tenv) emit(c types.Command) {
	env.g.Hardware.Input.Emit(types.NewCommandEvent("test", c))
}

func (env *tenv) requireDisplay(t testing.TB, l1, l2 string) {
	t.Helper()
	select {
	case current := <-env.displayUpdated:
		t.Logf("display:\n%s", current.String())
		require.Equal(t,
			strings.TrimRight(l1, " ")+"\n"+strings.TrimRight(l2, " "),
			strings.TrimRight(string(current.L1), " ")+"\n"+strings.TrimRight(string(current.L2), " "))
	case <-time.After(testTimeout):
		t.Fatalf("display timeout expected=%q/%q", l1, l2)
	}
}

func (env *tenv) requireFrame(t testing.TB, fun func(ui.Frame) bool) ui.Frame {
	t.Helper()
	deadline := time.After(testTimeout)
	for {
		select {
		case f := <-env.frames:
			if fun(f) {
				return f
			}
		case <-deadline:
			t.Fatal("frame timeout")
			return ui.Frame{}
		}
	}
}

func (env *tenv) drainFrames() {
	for {
		select {
		case <-env.frames:
		default:
			return
		}
	}
}

// stop consumes goodbye frame and waits for UI loop end.
func (env *tenv) stop(t testing.TB) {
	t.Helper()
	env.g.Stop()
	env.requireDisplay(t, ui.DefaultMsgBye, "")
	env.g.Alive.Wait()
	require.Equal(t, ui.StateStop, env.ui.State())
}
