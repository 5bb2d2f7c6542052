package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/temoto/washpanel/cmd/washpanel/console"
	"github.com/temoto/washpanel/cmd/washpanel/hidmon"
	"github.com/temoto/washpanel/cmd/washpanel/panel"
	"github.com/temoto/washpanel/cmd/washpanel/subcmd"
	tui_cmd "github.com/temoto/washpanel/cmd/washpanel/tui"
	"github.com/temoto/washpanel/internal/state"
	state_new "github.com/temoto/washpanel/internal/state/new"
	"github.com/temoto/washpanel/log2"
)

var log = log2.NewStderr(log2.LDebug)

// set with go build -ldflags="-X main.BuildVersion=..."
var BuildVersion string = "unknown"

var modules []subcmd.Mod

func init() {
	modules = []subcmd.Mod{
		panel.Mod,
		tui_cmd.Mod,
		console.Mod,
		hidmon.Mod,
		{Name: "version", Usage: "print build version", Main: versionMain},
	}
}

func main() {
	flagConfig := flag.String("config", "washpanel.hcl", "")
	flag.Usage = usage
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = panel.Mod.Name
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		log.Fatal(err)
	}

	if mod.Name == "version" {
		_ = versionMain(context.Background(), nil)
		return
	}

	if subcmd.SdNotify("start") {
		// under systemd, journal adds timestamp
		log.SetFlags(log2.LServiceFlags)
	} else if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetFlags(log2.LInteractiveFlags)
	}
	log.Infof("washpanel %s version=%s", mod.Name, BuildVersion)

	ctx, g := state_new.NewContext(log)
	g.BuildVersion = BuildVersion
	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	if err := mod.Main(ctx, config); err != nil {
		g.Fatal(err)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: %s [-config path] [command]\ncommands:\n", os.Args[0])
	for _, m := range modules {
		fmt.Fprintf(out, "  %-12s %s\n", m.Name, m.Usage)
	}
	fmt.Fprintln(out, "flags:")
	flag.PrintDefaults()
}

func versionMain(ctx context.Context, config *state.Config) error {
	fmt.Printf("washpanel %s\n", BuildVersion)
	return nil
}
