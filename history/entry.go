package history

import (
	"fmt"
	"time"

	"github.com/watchroom-cli/watchroom/media"
)

// Entry is one remembered video.
type Entry struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Fingerprint string    `json:"fingerprint"`
	RoomID      int       `json:"room_id"`
	Position    float64   `json:"position"`
	Duration    float64   `json:"duration"`
	OpenedAt    time.Time `json:"opened_at"`
}

// encode keys entries by content so a moved file keeps its history.
func (e *Entry) encode() string {
	if e.Fingerprint == "" {
		return e.Path
	}
	return e.Fingerprint
}

// Watched is the played share in [0, 100], zero while the duration is unknown.
func (e *Entry) Watched() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return min(e.Position/e.Duration*100, 100)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %.0f%%", e.Name, e.Watched())
}

func newEntry(source *media.Source) *Entry {
	return &Entry{
		Name:        source.File.Name,
		Path:        source.File.Path,
		Fingerprint: source.Fingerprint,
		RoomID:      source.RoomID,
	}
}
