package controller

import (
	"errors"
	"fmt"
)

var (
	// ErrPlaybackRequestFailed wraps a play, pause, seek or fullscreen request the element declined.
	ErrPlaybackRequestFailed = errors.New("playback request failed")

	// ErrBindingAbsent marks a command issued before any media is bound. Such commands are ignored.
	ErrBindingAbsent = errors.New("no media bound")

	// ErrNotPermitted marks a transport command from a participant who does not own the room.
	ErrNotPermitted = errors.New("transport is reserved to the room owner")
)

func requestFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPlaybackRequestFailed, err)
}
