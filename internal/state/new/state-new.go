// Sorry, workaround to import cycles.
package state_new

import (
	"context"
	"os"
	"testing"

	"github.com/temoto/alive/v2"
	"github.com/temoto/washpanel/hardware/text_display"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/log2"
)

func NewContext(log *log2.Log) (context.Context, *state.Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}

	g := &state.Global{
		Alive: alive.NewAlive(),
		Log:   log,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, state.ContextKey, g)

	return ctx, g
}

// NewTestContext reads inline config, display is mock device of configured width.
func NewTestContext(t testing.TB, confString string) (context.Context, *state.Global, *text_display.MockDevicer) {
	fs := state.NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	var log *log2.Log
	if os.Getenv("washpanel_test_log_stderr") == "1" {
		log = log2.NewStderr(log2.LDebug) // useful with panics
	} else {
		log = log2.NewTest(t, log2.LDebug)
	}
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log)
	g.BuildVersion = "test"
	config := state.MustReadConfig(log, fs, "test-inline")
	width, err := config.Hardware.HD44780.ValidWidth()
	if err != nil {
		t.Fatalf("test config err=%v", err)
	}
	display, dev := text_display.NewMockTextDisplay(&text_display.TextDisplayConfig{Width: uint32(width), Log: log})
	g.Hardware.HD44780.Display = display
	g.MustInit(ctx, config)
	t.Cleanup(g.Stop)

	return ctx, g, dev
}
