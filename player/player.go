// Package player defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package player

import (
	"errors"
	"sync"
)

// ErrNotRunning is returned by requests issued before a media engine has been started.
var ErrNotRunning = errors.New("media engine is not running")

// Element is a media rendering surface. Requests are fire-and-forget:
// the outcome is reported through events delivered to subscribers.
type Element interface {
	// Load replaces the current media with url. The element starts paused.
	Load(url string, title string) error

	// Unload removes the current media.
	Unload() error

	// Play requests playback.
	Play() error

	// Pause requests suspension.
	Pause() error

	// Paused reports the element's own suspension state.
	Paused() bool

	// CurrentTime reports the element's playback position in seconds.
	CurrentTime() float64

	// Seek moves playback to an absolute position in seconds.
	Seek(seconds float64) error

	// SetVolume sets the volume in [0, 1].
	SetVolume(volume float64) error

	// SetMuted mutes or unmutes without touching the volume.
	SetMuted(muted bool) error

	// SetFullscreen requests entering or leaving fullscreen presentation.
	SetFullscreen(fullscreen bool) error

	// Subscribe registers fn for element events and returns a function that removes it.
	Subscribe(fn func(Event)) (unsubscribe func())

	// Close terminates the element and releases all associated system resources.
	Close() error
}

// hub fans events out to subscribers.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func (h *hub) subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs == nil {
		h.subs = make(map[int]func(Event))
	}
	id := h.next
	h.next++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
		})
	}
}

func (h *hub) emit(events ...Event) {
	h.mu.Lock()
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	subs := make([]func(Event), 0, len(ids))
	for _, id := range sortInts(ids) {
		subs = append(subs, h.subs[id])
	}
	h.mu.Unlock()

	for _, event := range events {
		for _, fn := range subs {
			fn(event)
		}
	}
}
