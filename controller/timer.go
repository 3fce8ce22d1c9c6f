package controller

import "time"

// Scheduler provides wall time and deferred callbacks.
type Scheduler interface {
	Now() time.Time
	// AfterFunc calls fn on another goroutine after d. stop prevents a pending call.
	AfterFunc(d time.Duration, fn func()) (stop func() bool)
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// SystemClock schedules on real time.
var SystemClock Scheduler = systemClock{}

// hideTimer is the single cancellable countdown that hides the controls.
// A fire that races with cancel is discarded by comparing generations on the dispatch thread.
type hideTimer struct {
	scheduler  Scheduler
	dispatcher Dispatcher
	generation uint64
	stop       func() bool
}

func (t *hideTimer) arm(d time.Duration, fire func()) {
	t.cancel()

	gen := t.generation
	t.stop = t.scheduler.AfterFunc(d, func() {
		t.dispatcher.Post(func() {
			if t.generation != gen || t.stop == nil {
				return
			}
			t.stop = nil
			fire()
		})
	})
}

func (t *hideTimer) cancel() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	t.generation++
}

func (t *hideTimer) pending() bool {
	return t.stop != nil
}
