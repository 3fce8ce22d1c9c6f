// Package controller implements the permission-aware playback state machine of a room.
package controller

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/media"
)

// Phase is the outer playback state. Seeking is tracked separately by SeekSession.
type Phase int

const (
	PhaseUnbound Phase = iota
	PhaseLoading
	PhaseReady
	PhasePlaying
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseUnbound:
		return "unbound"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// PlaybackState mirrors the element. Times are in seconds, volume in [0, 1].
type PlaybackState struct {
	IsPlaying    bool
	CurrentTime  float64
	Duration     float64
	Volume       float64
	IsMuted      bool
	IsFullscreen bool
}

// SeekSession is an uncommitted drag on the progress bar.
type SeekSession struct {
	Active      bool
	PendingTime float64
}

// ControlsVisibility tracks the auto-hiding control overlay. A zero HideDeadline means no timer is armed.
type ControlsVisibility struct {
	Visible      bool
	HideDeadline time.Time
}

// Session identifies the participant. It is fixed for the controller's lifetime.
type Session struct {
	RoomID  int
	IsOwner bool
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Session  Session
	Phase    Phase
	State    PlaybackState
	Seek     SeekSession
	Controls ControlsVisibility
	Source   *media.Source
}

// DisplayTime is the pending seek target during a drag and the element time otherwise.
func (s Snapshot) DisplayTime() float64 {
	if s.Seek.Active {
		return s.Seek.PendingTime
	}
	return s.State.CurrentTime
}

// Progress is the played percentage, zero until the duration is known.
func (s Snapshot) Progress() float64 {
	if s.State.Duration <= 0 {
		return 0
	}
	return lo.Clamp(s.DisplayTime()/s.State.Duration*100, 0, 100)
}

// RangeMax is the upper bound of the seek range. It falls back to 100 while the duration is unknown.
func (s Snapshot) RangeMax() float64 {
	if s.State.Duration > 0 {
		return s.State.Duration
	}
	return 100
}

// Muted reports whether audio is effectively silent.
func (s Snapshot) Muted() bool {
	return s.State.IsMuted || s.State.Volume == 0
}
