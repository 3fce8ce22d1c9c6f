// Package history remembers recently opened videos and where their playback stopped.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/where"
	"golang.org/x/exp/slices"
)

// cacher provides a disk-backed registry of opened videos keyed by fingerprint.
var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var now = time.Now

// Get returns every remembered video.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records that source was opened. A known video keeps its last position.
func Save(source *media.Source) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newEntry(source)
	if existing, exists := saved[record.encode()]; exists {
		record.Position = existing.Position
		record.Duration = existing.Duration
	}
	record.OpenedAt = now()

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// SavePosition records where playback of source stopped.
func SavePosition(source *media.Source, position, duration float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newEntry(source)
	if existing, exists := saved[record.encode()]; exists {
		record.OpenedAt = existing.OpenedAt
	} else {
		record.OpenedAt = now()
	}
	record.Position = position
	record.Duration = duration

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// Remove forgets a video.
func Remove(entry *Entry) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, entry.encode())
	return cacher.Set(saved)
}

// Prune forgets every video whose file no longer exists and returns how many were dropped.
func Prune() (int, error) {
	saved, err := Get()
	if err != nil {
		return 0, err
	}

	var pruned int
	for _, entry := range saved {
		exists, err := filesystem.API().Exists(entry.Path)
		if err != nil {
			return pruned, err
		}
		if exists {
			continue
		}

		if err = Remove(entry); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}

// Recent returns up to limit entries, most recently opened first. A limit of zero returns all.
func Recent(limit int) ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(saved))
	for _, entry := range saved {
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.OpenedAt.Compare(a.OpenedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
