// Card wizard in terminal, with mouse. Panel hardware runs too when enabled in config.
package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/juju/errors"
	"github.com/temoto/washpanel/cmd/washpanel/panel"
	"github.com/temoto/washpanel/cmd/washpanel/subcmd"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/internal/tui"
	"github.com/temoto/washpanel/log2"
)

const (
	DefaultLogPath = "washpanel-tui.log"
	LogPathEnv     = "washpanel_tui_log"
	frameBuffer    = 16
)

var Mod = subcmd.Mod{Name: "tui", Usage: "run card wizard in terminal", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)

	// terminal belongs to the program, log goes to file
	logPath := os.Getenv(LogPathEnv)
	if logPath == "" {
		logPath = DefaultLogPath
	}
	logFile, err := tea.LogToFile(logPath, "washpanel")
	if err != nil {
		return errors.Annotatef(err, "tui log=%s", logPath)
	}
	defer logFile.Close()
	g.Log = log2.NewWriter(logFile, log2.LInfo)
	g.Log.SetFlags(log2.LInteractiveFlags)

	g.MustInit(ctx, config)
	g.StopOnSignal()

	x, err := panel.Start(ctx)
	if err != nil {
		return err
	}
	sink, frames := tui.NewFrameSink(frameBuffer)
	x.AddRenderer(sink)
	go x.Loop(ctx)

	p := tea.NewProgram(tui.New(g.Hardware.Input, frames),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	go func() {
		<-g.Alive.StopChan()
		p.Quit()
	}()
	_, err = p.Run()
	g.Stop()
	g.Alive.Wait()
	return errors.Annotate(err, "tui")
}
