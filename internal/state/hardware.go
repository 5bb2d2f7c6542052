package state

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/washpanel/hardware/input"
	"github.com/temoto/washpanel/hardware/lcd"
	"github.com/temoto/washpanel/hardware/text_display"
	"github.com/temoto/washpanel/helpers"
	"github.com/temoto/washpanel/internal/types"
)

const DefaultScrollDelay = 150 * time.Millisecond

type hardware struct {
	HD44780 struct {
		once
		Device  *lcd.LCD
		Display *text_display.TextDisplay
	}
	Input *input.Dispatch
}

func (g *Global) MustTextDisplay() *text_display.TextDisplay {
	d, err := g.TextDisplay()
	if err != nil {
		g.Log.Fatal(err)
	}
	if d == nil {
		g.Log.Fatal("text display is not available")
	}
	return d
}

// TextDisplay without hd44780 enabled still keeps frame state,
// so terminal renderers and logs work on a bench without LCD.
func (g *Global) TextDisplay() (*text_display.TextDisplay, error) {
	x := &g.Hardware.HD44780
	_ = x.do(func() error {
		if x.Display != nil { // state-new testing mode
			return nil
		}

		devConfig := &g.Config.Hardware.HD44780
		width, err := devConfig.ValidWidth()
		if err != nil {
			return errors.Annotate(err, "hd44780")
		}
		displayConfig := &text_display.TextDisplayConfig{
			Width:       uint32(width),
			Codepage:    devConfig.Codepage,
			ScrollDelay: helpers.IntMillisecondDefault(devConfig.ScrollDelayMs, DefaultScrollDelay),
			Log:         g.Log,
		}
		disp, err := text_display.NewTextDisplay(displayConfig)
		if err != nil {
			return errors.Annotatef(err, "NewTextDisplay config=%#v", displayConfig)
		}
		x.Display = disp

		if !devConfig.Enable {
			g.Log.Infof("text display hd44780 is disabled")
			return nil
		}
		dev, err := lcd.Open(devConfig)
		if err != nil {
			return errors.Annotatef(err, "hd44780 config=%#v", devConfig)
		}
		x.Device = dev
		x.Display.SetDevice(dev)
		go x.Display.Run()
		go helpers.AliveSub(g.Alive, x.Display.Alive())
		return nil
	})
	return x.Display, x.err
}

func (g *Global) initDisplay() error {
	d, err := g.TextDisplay()
	if d != nil {
		d.Clear()
	}
	return err
}

func (g *Global) initInput() error {
	g.Hardware.Input = input.NewDispatch(g.Log, g.Alive.StopChan())
	g.Hardware.Input.Monitor("log", func(e types.InputEvent) {
		g.Log.Debugf("input %s", e.String())
	}, g.Alive.StopChan())

	sources := make([]input.Source, 0, 2)
	errs := make([]error, 0, 2)

	if src, err := g.initInputDevInputEvent(); err != nil {
		errs = append(errs, err)
	} else if src != nil {
		sources = append(sources, src)
	}
	if src, err := g.initInputHidEncoder(); err != nil {
		errs = append(errs, err)
	} else if src != nil {
		sources = append(sources, src)
	}

	go g.Hardware.Input.Run(sources)
	if len(errs) != 0 {
		return errors.Annotate(errs[0], "initInput")
	}
	return nil
}

func (g *Global) initInputDevInputEvent() (input.Source, error) {
	const tag = input.DevInputEventTag
	c := &g.Config.Hardware.Input.DevInputEvent
	if !c.Enable {
		g.Log.Infof("input=%s disabled", tag)
		return nil, nil
	}
	keymap := input.DefaultKeymap()
	if c.ServiceKey != 0 {
		for k, cmd := range keymap {
			if cmd == types.CommandService {
				delete(keymap, k)
			}
		}
		keymap[types.InputKey(c.ServiceKey)] = types.CommandService
	}
	src, err := input.NewDevInputEventSource(c.Device, keymap)
	if err != nil {
		return nil, errors.Annotatef(err, "input=%s device=%s", tag, c.Device)
	}
	return src, nil
}

func (g *Global) initInputHidEncoder() (input.Source, error) {
	const tag = input.HidEncoderTag
	if !g.Config.Hardware.HidEncoder.Enable {
		g.Log.Infof("input=%s disabled", tag)
		return nil, nil
	}
	hc, err := g.Config.HidEncoderConfig()
	if err != nil {
		return nil, err
	}
	src, err := input.NewHidEncoder(hc)
	if err != nil {
		return nil, errors.Annotatef(err, "input=%s", tag)
	}
	return src, nil
}

// HidEncoderConfig applies default device identity.
// Negative vendor disables identity check.
func (c *Config) HidEncoderConfig() (input.HidEncoderConfig, error) {
	x := &c.Hardware.HidEncoder
	hc := input.HidEncoderConfig{
		Device:  x.Device,
		Vendor:  input.DefaultHidVendor,
		Product: input.DefaultHidProduct,
		Scale:   x.Scale,
	}
	switch {
	case x.Vendor > 0xffff || x.Product > 0xffff || x.Product < 0:
		return hc, errors.NotValidf("input=%s vendor=%d product=%d", input.HidEncoderTag, x.Vendor, x.Product)
	case x.Vendor < 0:
		hc.Vendor, hc.Product = 0, 0
	case x.Vendor > 0 || x.Product > 0:
		hc.Vendor, hc.Product = uint16(x.Vendor), uint16(x.Product)
	}
	if hc.Device == "" {
		return hc, errors.NotValidf("input=%s device empty", input.HidEncoderTag)
	}
	return hc, nil
}

type once struct {
	sync.Mutex
	called uint32 // atomic bool
	err    error
}

func (o *once) done() bool {
	return atomic.LoadUint32(&o.called) == 1
}

func (o *once) do(f func() error) error {
	if o.done() { // fast path
		return o.err
	}
	o.Lock()
	defer o.Unlock()
	if o.done() {
		return o.err
	}
	o.err = f()
	atomic.StoreUint32(&o.called, 1)
	return o.err
}
