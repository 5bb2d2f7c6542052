package helpers

import (
	"strings"
	"sync"

	"github.com/juju/errors"
)

func FoldErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	ss := make([]string, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			ss = append(ss, e.Error())
		}
	}
	switch len(ss) {
	case 0:
		return nil
	case 1:
		for _, e := range errs {
			if e != nil {
				return e
			}
		}
	}
	return errors.New(strings.Join(ss, "\n"))
}

// WrapErrChan is for parallel init: `go WrapErrChan(&wg, errch, f)`.
func WrapErrChan(wg *sync.WaitGroup, ch chan<- error, fun func() error) {
	defer wg.Done()
	if err := fun(); err != nil {
		ch <- err
	}
}

// FoldErrChan expects closed channel.
func FoldErrChan(ch <-chan error) error {
	errs := make([]error, 0, 8)
	for e := range ch {
		errs = append(errs, e)
	}
	return FoldErrors(errs)
}
