package constant

import "time"

// Playback defaults shared by the loader, the controller and the config registry.
const (
	// SkipStep is the distance of a single skip backward or forward.
	SkipStep = 10 * time.Second

	// ControlsHideAfter is how long controls stay visible after pointer activity during playback.
	ControlsHideAfter = 3 * time.Second

	// VideoMimePrefix is the declared media type prefix accepted by the loader.
	VideoMimePrefix = "video/"

	// RejectedUnsupportedType is the reason attached to files that are neither video types nor known containers.
	RejectedUnsupportedType = "unsupported-type"
)

// VideoExtensions lists the container extensions accepted regardless of the declared media type.
var VideoExtensions = []string{"mkv", "mp4", "webm", "ogg"}

// Terminal dimensions assumed when the real size cannot be read.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// HistoryTimeFormat is how the history listing prints when a video was last opened.
const HistoryTimeFormat = "2006-01-02 15:04"
