// Package atomic_clock is unix nanoseconds in atomic int64.
// Safe to read from other goroutines, e.g. UI activity time shown by console.
package atomic_clock

import (
	"sync/atomic"
	"time"
)

type Clock struct{ v int64 }

func source() int64 { return time.Now().UnixNano() }

func (c *Clock) get() int64    { return atomic.LoadInt64(&c.v) }
func (c *Clock) set(new int64) { atomic.StoreInt64(&c.v, new) }

func (c *Clock) IsZero() bool { return c.get() == 0 }

func (c *Clock) SetNow()             { c.set(source()) }
func (c *Clock) SetTime(t time.Time) { c.set(t.UnixNano()) }
func (c *Clock) Time() time.Time     { return time.Unix(0, c.get()) }
func (c *Clock) UnixNano() int64     { return c.get() }

func New(v int64) *Clock { return &Clock{v: v} }
func Now() *Clock        { return New(source()) }

func Since(begin *Clock) time.Duration { return time.Duration(source() - begin.get()) }

// Remaining is timeout minus time passed since begin, never negative.
func Remaining(begin *Clock, timeout time.Duration) time.Duration {
	if d := timeout - Since(begin); d > 0 {
		return d
	}
	return 0
}
