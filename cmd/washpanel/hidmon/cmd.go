// Print rotary encoder reports, for calibrating key ranges.
package hidmon

import (
	"context"

	"github.com/juju/errors"
	"github.com/temoto/washpanel/cmd/washpanel/subcmd"
	"github.com/temoto/washpanel/hardware/input"
	"github.com/temoto/washpanel/internal/state"
	"github.com/temoto/washpanel/internal/types"
)

var Mod = subcmd.Mod{Name: "hid-monitor", Usage: "log rotary encoder values and commands", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.Config = config
	g.StopOnSignal()

	hc, err := config.HidEncoderConfig()
	if err != nil {
		return errors.Annotate(err, "hid-monitor")
	}
	enc, err := input.NewHidEncoder(hc)
	if err != nil {
		return errors.Annotate(err, "hid-monitor")
	}
	g.Log.Infof("hid-monitor device=%s scale=%d, stop with ^C", hc.Device, hc.Scale)
	go func() {
		<-g.Alive.StopChan()
		enc.Close()
	}()
	return Monitor(g, enc)
}

// Monitor logs every source event until read fails or Global stops.
func Monitor(g *state.Global, src input.Source) error {
	for {
		e, err := src.Read()
		if err != nil {
			if !g.Alive.IsRunning() {
				return nil
			}
			return errors.Annotatef(err, "source=%s", src.String())
		}
		if e.Command != types.CommandNone {
			g.Log.Infof("analog=%d command=%s", e.Analog, e.Command.String())
		} else {
			g.Log.Infof("analog=%d", e.Analog)
		}
	}
}
