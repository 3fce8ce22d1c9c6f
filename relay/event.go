// Package relay carries owner transport transitions out of the controller.
//
// Nothing here talks to other participants; emitters are local sinks that a
// synchronization channel can replace without touching the controller.
package relay

import "time"

// Type names a transport transition.
type Type string

const (
	Play   Type = "play"
	Pause  Type = "pause"
	Seek   Type = "seek"
	Skip   Type = "skip"
	Source Type = "source"
)

// Event is a transport transition at a playback position.
type Event struct {
	Type            Type      `json:"type"`
	PositionSeconds float64   `json:"positionSeconds"`
	Timestamp       time.Time `json:"timestamp"`
	RoomID          int       `json:"roomId,omitempty"`
	Fingerprint     string    `json:"fingerprint,omitempty"`
}

// Emitter receives transport events. Emit must not block the caller for long.
type Emitter interface {
	Emit(event Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(event Event) {
	f(event)
}

// Discard drops every event.
var Discard Emitter = EmitterFunc(func(Event) {})

// Multi fans an event out to several emitters in order.
func Multi(emitters ...Emitter) Emitter {
	return EmitterFunc(func(event Event) {
		for _, e := range emitters {
			e.Emit(event)
		}
	})
}
