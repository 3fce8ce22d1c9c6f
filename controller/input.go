package controller

import "sync"

// Input is a user gesture delivered to a mounted controller.
type Input interface {
	input()
}

// KeyPress is a key with its modifiers. Key uses terminal key names such as " ", "left" or "f".
type KeyPress struct {
	Key  string
	Ctrl bool
	Meta bool
	Alt  bool
}

func (KeyPress) input() {}

// String returns the bare key so that bindings match regardless of modifiers.
func (k KeyPress) String() string {
	return k.Key
}

// Pointer is a gesture on the rendering surface.
type Pointer int

const (
	// PointerMove is any pointer activity over the surface.
	PointerMove Pointer = iota + 1
	// SurfaceClick toggles playback for owners.
	SurfaceClick
	// SurfaceDoubleClick toggles fullscreen for owners.
	SurfaceDoubleClick
)

func (Pointer) input() {}

// InputSource delivers inputs to subscribers.
type InputSource interface {
	Subscribe(fn func(Input)) (unsubscribe func())
}

// InputBus is an InputSource fed by Publish.
type InputBus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Input)
}

func (b *InputBus) Subscribe(fn func(Input)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]func(Input))
	}
	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish hands in to every subscriber.
func (b *InputBus) Publish(in Input) {
	b.mu.Lock()
	subs := make([]func(Input), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(in)
	}
}

// Subscribers returns the number of active subscriptions.
func (b *InputBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
