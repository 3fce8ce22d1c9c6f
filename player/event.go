package player

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// EventKind enumerates the notifications an element emits.
type EventKind int

const (
	EventMetadataLoaded EventKind = iota + 1
	EventTimeUpdate
	EventVolumeChange
	EventPlay
	EventPause
	EventEnded
	EventFullscreenChange
)

func (k EventKind) String() string {
	switch k {
	case EventMetadataLoaded:
		return "metadata-loaded"
	case EventTimeUpdate:
		return "time-update"
	case EventVolumeChange:
		return "volume-change"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	case EventEnded:
		return "ended"
	case EventFullscreenChange:
		return "fullscreen-change"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a notification from an element. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind
	CurrentTime float64
	Duration    float64
	Volume      float64
	Muted       bool
	Fullscreen  bool
}

func sortInts(ids []int) []int {
	slices.Sort(ids)
	return ids
}
