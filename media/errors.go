package media

import "fmt"

// RejectedFile is returned when a selected file is not a playable video.
type RejectedFile struct {
	Name   string
	Reason string
}

func (r *RejectedFile) Error() string {
	return fmt.Sprintf("rejected %q: %s", r.Name, r.Reason)
}
