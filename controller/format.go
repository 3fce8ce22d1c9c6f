package controller

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as MM:SS, or H:MM:SS once there is at least one hour.
// Negative, non-finite and out of range values render as 00:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 || seconds >= math.MaxInt64 {
		return "00:00"
	}

	total := int64(math.Floor(seconds))
	h := total / 3600
	m := (total / 60) % 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
