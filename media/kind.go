package media

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Acceptance decides whether a file is a playable video.
type Acceptance struct {
	// MimePrefixes are declared media type prefixes, e.g. "video/".
	MimePrefixes []string
	// Extensions are container extensions without the leading dot.
	Extensions []string
}

// Accepts reports whether ref has a video media type or a recognized container extension.
// Either condition is sufficient.
func (a Acceptance) Accepts(ref FileRef) bool {
	declared := strings.ToLower(ref.Type)
	for _, prefix := range a.MimePrefixes {
		if prefix != "" && strings.HasPrefix(declared, strings.ToLower(prefix)) {
			return true
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(ref.Name), "."))
	if ext == "" {
		return false
	}

	return lo.ContainsBy(a.Extensions, func(e string) bool {
		return strings.EqualFold(strings.TrimPrefix(e, "."), ext)
	})
}
