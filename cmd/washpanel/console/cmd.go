// Card wizard driven by text commands, for bench and scripted checks.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/washpanel/cmd/washpanel/panel"
	"github.com/temoto/washpanel/cmd/washpanel/subcmd"
	"github.com/temoto/washpanel/helpers/cli"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/internal/ui"
)

const SourceTag = "console"

const usage = `syntax: one command per line
- left, right    move selection
- ok, return     confirm, go back
- select N       jump to card index N
- service        toggle diag view
- state          print selection state
- help
`

var Mod = subcmd.Mod{Name: "console", Usage: "run card wizard with text commands", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.StopOnSignal()

	uiFront, err := panel.Start(ctx)
	if err != nil {
		return err
	}
	uiFront.AddRenderer(FramePrinter(os.Stdout))
	go uiFront.Loop(ctx)

	exec := newExecutor(g.Hardware.Input, uiFront, os.Stdout)
	err = cli.MainLoop("washpanel", exec, newCompleter(), g.Alive.StopChan())
	g.Stop()
	g.Alive.Wait()
	return err
}

type emitter interface {
	Emit(types.InputEvent)
}

// ParseLine converts console command into input event.
func ParseLine(line string) (types.InputEvent, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return types.InputEvent{}, errors.NotValidf("empty command")
	}
	cmd := types.ParseCommand(parts[0])
	if cmd == types.CommandNone {
		return types.InputEvent{}, errors.NotFoundf("command=%s", parts[0])
	}
	e := types.NewCommandEvent(SourceTag, cmd)
	switch {
	case cmd == types.CommandSelect:
		if len(parts) != 2 {
			return types.InputEvent{}, errors.NotValidf("select requires index")
		}
		i, err := strconv.Atoi(parts[1])
		if err != nil || i < 0 {
			return types.InputEvent{}, errors.NotValidf("select index=%s", parts[1])
		}
		e.Index = i
	case len(parts) != 1:
		return types.InputEvent{}, errors.NotValidf("command=%s extra arguments", parts[0])
	}
	return e, nil
}

func newExecutor(em emitter, uiFront *ui.UI, w io.Writer) func(string) {
	return func(line string) {
		line = strings.TrimSpace(line)
		switch line {
		case "":
			return
		case "help":
			fmt.Fprint(w, usage)
			return
		case "state":
			if uiFront != nil {
				f := uiFront.LastFrame()
				fmt.Fprintf(w, "ui=%s idle=%s stage=%d selected=%d editing=%t\n",
					uiFront.State().String(), uiFront.IdleFor().Truncate(time.Second),
					f.View.Stage, f.View.Selected, f.View.Editing)
			}
			return
		}
		e, err := ParseLine(line)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			return
		}
		em.Emit(e)
	}
}

func newCompleter() func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "left", Description: "previous card"},
		{Text: "right", Description: "next card"},
		{Text: "ok", Description: "confirm card or option"},
		{Text: "return", Description: "back to previous stage"},
		{Text: "select", Description: "select N: jump to card"},
		{Text: "service", Description: "diag view"},
		{Text: "state"},
		{Text: "help"},
	}
	return func(d prompt.Document) []prompt.Suggest {
		word := d.GetWordBeforeCursor()
		if word == "" {
			return nil
		}
		return prompt.FilterFuzzy(suggests, word, true)
	}
}

// FramePrinter writes every UI frame as two lines.
func FramePrinter(w io.Writer) ui.Renderer {
	return ui.RenderFunc(func(f ui.Frame) {
		fmt.Fprintf(w, "| %s\n| %s\n", f.L1, f.L2)
	})
}
