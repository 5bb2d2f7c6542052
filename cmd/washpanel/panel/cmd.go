// Card wizard on front panel: LCD, rotary encoder and keys.
package panel

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/washpanel/cmd/washpanel/subcmd"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/internal/ui"
)

var Mod = subcmd.Mod{Name: "panel", Usage: "run card wizard on panel hardware", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.Log.Debugf("config=%+v", g.Config)
	g.StopOnSignal()

	uiFront, err := Start(ctx)
	if err != nil {
		return err
	}
	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Debugf("washpanel init complete, running")
	uiFront.Loop(ctx)
	g.Alive.Wait()
	return nil
}

// Start prepares UI after Global init, shared by terminal and console front ends.
// SIGUSR1 toggles diag view.
func Start(ctx context.Context) (*ui.UI, error) {
	g := state.GetGlobal(ctx)
	x := new(ui.UI)
	if err := x.Init(ctx); err != nil {
		return nil, errors.Annotate(err, "ui init")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1)
	go func() {
		defer signal.Stop(sigs)
		stopch := g.Alive.StopChan()
		for {
			select {
			case <-sigs:
				g.Log.Infof("signal diag")
				x.Notify(types.Event{Kind: types.EventService})
			case <-stopch:
				return
			}
		}
	}()
	return x, nil
}
