package controller

import (
	"context"
	"sync"
)

// Dispatcher runs callbacks one at a time, each to completion before the next.
// Every input, element event and timer callback reaches the controller through it.
type Dispatcher interface {
	Post(fn func())
}

// Inline runs callbacks on the posting goroutine.
// Callbacks posted while another one runs are queued behind it instead of nesting.
// It only serializes callbacks posted from a single goroutine, so pair it with a Scheduler
// that fires on the caller's goroutine, never with SystemClock.
type Inline struct {
	mu       sync.Mutex
	draining bool
	queue    []func()
}

func (d *Inline) Post(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	if d.draining {
		d.mu.Unlock()
		return
	}

	d.draining = true
	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		next()
		d.mu.Lock()
	}
	d.draining = false
	d.mu.Unlock()
}

// Loop is a channel backed dispatcher drained by Run.
type Loop struct {
	queue chan func()
}

// NewLoop returns a loop that buffers up to size pending callbacks.
func NewLoop(size int) *Loop {
	return &Loop{queue: make(chan func(), size)}
}

func (l *Loop) Post(fn func()) {
	l.queue <- fn
}

// Run executes posted callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}
