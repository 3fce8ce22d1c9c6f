package media

import (
	"fmt"
	"sync"

	"github.com/samber/mo"
	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/log"
)

// Options configure a Loader.
type Options struct {
	// RoomID is stamped on every produced source.
	RoomID int
	// Allocator issues playable handles. Required.
	Allocator Allocator
	// Acceptance decides which files are playable. Defaults to video types and known containers.
	Acceptance *Acceptance
	// Cache remembers fingerprints between runs. Optional.
	Cache *FingerprintCache
}

// Loader owns the currently selected source and its playable handle.
type Loader struct {
	mu         sync.Mutex
	roomID     int
	alloc      Allocator
	acceptance Acceptance
	cache      *FingerprintCache
	current    mo.Option[*Source]
}

// NewLoader returns a loader with no current source.
func NewLoader(options Options) *Loader {
	acceptance := Acceptance{
		MimePrefixes: []string{constant.VideoMimePrefix},
		Extensions:   constant.VideoExtensions,
	}
	if options.Acceptance != nil {
		acceptance = *options.Acceptance
	}

	return &Loader{
		roomID:     options.RoomID,
		alloc:      options.Allocator,
		acceptance: acceptance,
		cache:      options.Cache,
		current:    mo.None[*Source](),
	}
}

// Current returns the bound source, if any.
func (l *Loader) Current() mo.Option[*Source] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Load prepares the file at path as the next source. An empty path selects nothing
// and returns a nil source; the current source stays until Clear.
func (l *Loader) Load(path string) (*Source, error) {
	if path == "" {
		return nil, nil
	}

	if err := l.check(describe(path)); err != nil {
		return nil, err
	}

	ref, err := Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return l.LoadFile(ref)
}

// LoadFile validates ref, fingerprints it and allocates a handle for it.
// The returned source is pending: it becomes current on Commit and is discarded with Rollback.
// A rejected file leaves the current source untouched.
func (l *Loader) LoadFile(ref FileRef) (*Source, error) {
	if err := l.check(ref); err != nil {
		return nil, err
	}

	digest, err := l.fingerprint(ref)
	if err != nil {
		return nil, err
	}

	url, err := l.alloc.Allocate(ref)
	if err != nil {
		return nil, fmt.Errorf("allocate handle: %w", err)
	}

	log.WithFields(log.Fields{"file": ref.Name, "fingerprint": digest, "room": l.roomID}).Info("source loaded")
	return &Source{
		URL:         url,
		File:        ref,
		Fingerprint: digest,
		RoomID:      l.roomID,
	}, nil
}

// Commit makes source current once the element renders it, then releases the previous handle.
func (l *Loader) Commit(source *Source) {
	if source == nil {
		return
	}
	l.swap(mo.Some(source))
}

// Rollback releases the handle of a pending source that never became current.
func (l *Loader) Rollback(source *Source) {
	if source == nil {
		return
	}

	if current, ok := l.Current().Get(); ok && current == source {
		return
	}
	if err := l.alloc.Release(source.URL); err != nil {
		log.WithError(err).WithField("url", source.URL).Warn("release handle")
	}
}

// Clear drops the current source and releases its handle. Unbind the element first.
func (l *Loader) Clear() {
	l.swap(mo.None[*Source]())
}

// Close releases the handle of the current source.
func (l *Loader) Close() error {
	l.Clear()
	return nil
}

func (l *Loader) check(ref FileRef) error {
	if l.acceptance.Accepts(ref) {
		return nil
	}

	log.WithFields(log.Fields{"file": ref.Name, "type": ref.Type}).Warn("rejected selection")
	return &RejectedFile{Name: ref.Name, Reason: constant.RejectedUnsupportedType}
}

// swap installs next and only then releases the previous handle.
func (l *Loader) swap(next mo.Option[*Source]) {
	l.mu.Lock()
	previous := l.current
	l.current = next
	l.mu.Unlock()

	prev, ok := previous.Get()
	if !ok {
		return
	}
	if current, has := next.Get(); has && current == prev {
		return
	}
	if err := l.alloc.Release(prev.URL); err != nil {
		log.WithError(err).WithField("url", prev.URL).Warn("release handle")
	}
}

func (l *Loader) fingerprint(ref FileRef) (string, error) {
	if l.cache != nil {
		if digest, ok := l.cache.Lookup(ref); ok {
			return digest, nil
		}
	}

	digest, err := Fingerprint(ref.Path)
	if err != nil {
		return "", err
	}

	if l.cache != nil {
		if err := l.cache.Store(ref, digest); err != nil {
			log.WithError(err).Warn("store fingerprint")
		}
	}
	return digest, nil
}
