package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

// MainLoop runs interactive prompt on terminal, otherwise executes stdin line by line.
// Returns when input ends or stop is closed.
func MainLoop(tag string, exec func(line string), complete func(d prompt.Document) []prompt.Suggest, stop <-chan struct{}) error {
	if isatty.IsTerminal(os.Stdin.Fd()) {
		// TODO OptionHistory
		p := prompt.New(exec, complete,
			prompt.OptionPrefix(tag+"> "),
			prompt.OptionTitle(tag),
		)
		p.Run()
		return nil
	}
	return ReadLines(os.Stdin, exec, stop)
}

// ReadLines skips empty lines and # comments.
func ReadLines(r io.Reader, exec func(line string), stop <-chan struct{}) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-stop:
			return nil
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exec(line)
	}
	return errors.Annotate(scanner.Err(), "cli read")
}
