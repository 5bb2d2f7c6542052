package helpers

import (
	"sync"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/temoto/alive/v2"
)

func TestFoldErrors(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FoldErrors(nil))
	assert.NoError(t, FoldErrors([]error{nil, nil}))
	single := errors.New("single")
	assert.Equal(t, single, FoldErrors([]error{nil, single}))
	assert.EqualError(t, FoldErrors([]error{errors.New("a"), nil, errors.New("b")}), "a\nb")
}

func TestFoldErrChan(t *testing.T) {
	t.Parallel()

	wg := sync.WaitGroup{}
	errch := make(chan error, 3)
	wg.Add(3)
	go WrapErrChan(&wg, errch, func() error { return nil })
	go WrapErrChan(&wg, errch, func() error { return errors.New("display") })
	go WrapErrChan(&wg, errch, func() error { return nil })
	wg.Wait()
	close(errch)
	assert.EqualError(t, FoldErrChan(errch), "display")
}

func TestIntSecondDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7*time.Second, IntSecondDefault(0, 7*time.Second))
	assert.Equal(t, 3*time.Second, IntSecondDefault(3, 7*time.Second))
	assert.Equal(t, 250*time.Millisecond, IntMillisecondDefault(250, time.Second))
}

func TestAliveSub(t *testing.T) {
	t.Parallel()

	root, leaf := alive.NewAlive(), alive.NewAlive()
	done := make(chan struct{})
	go func() { AliveSub(root, leaf); close(done) }()
	root.Stop()
	<-done
	assert.False(t, leaf.IsRunning())
}
