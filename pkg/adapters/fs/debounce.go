package fs

import (
	"sync"
	"time"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// debouncer coalesces bursts of filesystem events per collection key.
// An atomic save produces create+rename noise; only the last event
// within the delay window is delivered.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	stopped bool
	wg      sync.WaitGroup
}

type pendingEvent struct {
	timer *time.Timer
	event core.Event
	emit  func(core.Event)
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*pendingEvent),
	}
}

// add schedules emit for the event, replacing any event already
// pending for the same key and restarting its delay.
func (d *debouncer) add(key string, ev core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if p, ok := d.pending[key]; ok {
		p.event = ev
		p.emit = emit
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{event: ev, emit: emit}
	d.wg.Add(1)
	p.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		event := p.event
		fire := p.emit
		delete(d.pending, key)
		d.mu.Unlock()

		fire(event)
	})
	d.pending[key] = p
}

// stopAndWait refuses new events and waits for in-flight timers to
// finish, bounded by timeout. After it returns no emit callback can be
// running.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
