package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg asks Update to run the queued controller callbacks.
type dispatchMsg struct{}

// dispatcher queues controller callbacks and runs them from Update, which makes the
// bubbletea event loop the single dispatch thread. Post never blocks, so it is safe from
// Update itself, from element goroutines and from timers.
type dispatcher struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

func newDispatcher() *dispatcher {
	return &dispatcher{wake: make(chan struct{}, 1)}
}

func (d *dispatcher) Post(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// wait blocks until something is posted.
func (d *dispatcher) wait() tea.Cmd {
	return func() tea.Msg {
		<-d.wake
		return dispatchMsg{}
	}
}

// drain runs callbacks in post order, including ones posted while draining.
func (d *dispatcher) drain() {
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return
		}
		fn := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		fn()
	}
}
