// Abstract input events.
//
// Dispatch is the single owner of physical input sources.
// Views subscribe by name; command events go to the focused subscriber only,
// monitors receive every event. Subscription lives until its stop channel closes.
package input

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/temoto/washpanel/internal/types"
	"github.com/temoto/washpanel/log2"
)

type Source interface {
	Read() (types.InputEvent, error)
	String() string
}

type EventFunc func(types.InputEvent)
type sub struct {
	name    string
	ch      chan<- types.InputEvent
	fun     EventFunc
	stop    <-chan struct{}
	monitor bool
}

// delivered is closed after all subscribers got the event
type busItem struct {
	event     types.InputEvent
	delivered chan struct{}
}

type Dispatch struct {
	Log     *log2.Log
	bus     chan busItem
	mu      sync.Mutex
	subs    map[string]*sub
	focus   string
	stop    <-chan struct{}
	enabled uint32 // atomic bool
}

func NewDispatch(log *log2.Log, stop <-chan struct{}) *Dispatch {
	return &Dispatch{
		Log:     log,
		bus:     make(chan busItem),
		subs:    make(map[string]*sub, 8),
		stop:    stop,
		enabled: 1,
	}
}

// Enable false drops events from all sources, e.g. while panel is locked.
func (self *Dispatch) Enable(e bool) {
	var v uint32
	if e {
		v = 1
	}
	atomic.StoreUint32(&self.enabled, v)
	self.Log.Infof("input enabled=%t", e)
}

func (self *Dispatch) Enabled() bool { return atomic.LoadUint32(&self.enabled) == 1 }

// SubscribeChan registers view. First non-monitor subscriber gets focus.
func (self *Dispatch) SubscribeChan(name string, substop <-chan struct{}) chan types.InputEvent {
	target := make(chan types.InputEvent)
	sub := &sub{
		name: name,
		ch:   target,
		stop: substop,
	}
	self.safeSubscribe(sub)
	return target
}

func (self *Dispatch) SubscribeFunc(name string, fun EventFunc, substop <-chan struct{}) {
	sub := &sub{
		name: name,
		fun:  fun,
		stop: substop,
	}
	self.safeSubscribe(sub)
}

// Monitor receives every event regardless of focus, e.g. telemetry log.
func (self *Dispatch) Monitor(name string, fun EventFunc, substop <-chan struct{}) {
	sub := &sub{
		name:    name,
		fun:     fun,
		stop:    substop,
		monitor: true,
	}
	self.safeSubscribe(sub)
}

// Focus routes command events to named subscriber.
func (self *Dispatch) Focus(name string) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	s, ok := self.subs[name]
	if !ok {
		return errors.NotFoundf("input subscriber=%s", name)
	}
	if s.monitor {
		return errors.NotValidf("input focus on monitor=%s", name)
	}
	self.focus = name
	return nil
}

func (self *Dispatch) Focused() string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.focus
}

func (self *Dispatch) Unsubscribe(name string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if sub, ok := self.subs[name]; ok {
		self.subClose(sub)
	} else {
		self.Log.Errorf("input unsubscribe not found name=%s", name)
	}
}

func (self *Dispatch) Run(sources []Source) {
	for _, source := range sources {
		go self.readSource(source)
	}

	for {
		select {
		case item := <-self.bus:
			self.deliver(item.event)
			close(item.delivered)

		case <-self.stop:
			return
		}
	}
}

// Emit returns after event is delivered, so a view subscribed later
// never receives it.
func (self *Dispatch) Emit(event types.InputEvent) {
	item := busItem{event: event, delivered: make(chan struct{})}
	select {
	case self.bus <- item:
	case <-self.stop:
		return
	}
	select {
	case <-item.delivered:
	case <-self.stop:
	}
}

func (self *Dispatch) deliver(event types.InputEvent) {
	self.mu.Lock()
	defer self.mu.Unlock()

	handled := false
	for _, sub := range self.subs {
		if sub.monitor {
			self.subFire(sub, event)
		}
	}
	if sub, ok := self.subs[self.focus]; ok {
		handled = self.subFire(sub, event)
	}
	if !handled && event.Command != types.CommandNone {
		self.Log.Errorf("input is not handled event=%s focus=%s", event.String(), self.focus)
	}
}

func (self *Dispatch) subFire(sub *sub, event types.InputEvent) bool {
	select {
	case <-sub.stop:
		self.subClose(sub)
		return false
	default:
	}

	if sub.ch == nil && sub.fun == nil {
		panic(fmt.Sprintf("code error input sub=%s ch=nil fun=nil", sub.name))
	}
	if sub.fun != nil {
		sub.fun(event)
	}
	if sub.ch != nil {
		select {
		case sub.ch <- event:
		case <-sub.stop:
			self.subClose(sub)
			return false
		}
	}
	return true
}

// mu must be held
func (self *Dispatch) subClose(s *sub) {
	if s.ch != nil {
		close(s.ch)
	}
	delete(self.subs, s.name)
	if self.focus == s.name {
		self.focus = ""
	}
}

func (self *Dispatch) safeSubscribe(s *sub) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if existing, ok := self.subs[s.name]; ok {
		select {
		case <-s.stop:
			panic("code error input subscribe already closed name=" + s.name)
		case <-existing.stop:
			self.subClose(existing)
		default:
			panic("code error input duplicate subscribe name=" + s.name)
		}
	}
	self.subs[s.name] = s
	if self.focus == "" && !s.monitor {
		self.focus = s.name
	}
}

func (self *Dispatch) readSource(source Source) {
	tag := source.String()
	for {
		event, err := source.Read()
		if err != nil {
			select {
			case <-self.stop:
				return
			default:
			}
			err = errors.Annotatef(err, "input source=%s", tag)
			self.Log.Error(errors.ErrorStack(err))
			return
		}
		if self.Enabled() {
			self.Emit(event)
		} else {
			self.Log.Debugf("input disabled, ignore event=%s", event.String())
		}
	}
}
