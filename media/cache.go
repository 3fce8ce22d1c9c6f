package media

import (
	"fmt"
	"sync"

	"github.com/metafates/gache"
	"github.com/watchroom-cli/watchroom/filesystem"
)

// cachedFingerprint is a digest remembered for a specific file revision.
type cachedFingerprint struct {
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
	Digest  string `json:"digest"`
}

// FingerprintCache remembers digests by path so that reselecting an unchanged file does not rehash it.
type FingerprintCache struct {
	mu     sync.Mutex
	cacher *gache.Cache[map[string]cachedFingerprint]
}

// NewFingerprintCache returns a cache persisted at path.
func NewFingerprintCache(path string) *FingerprintCache {
	return &FingerprintCache{
		cacher: gache.New[map[string]cachedFingerprint](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (c *FingerprintCache) load() (map[string]cachedFingerprint, error) {
	cached, expired, err := c.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]cachedFingerprint), nil
	}
	return cached, nil
}

// Lookup returns the digest of ref if it was computed for the same size and modification time.
func (c *FingerprintCache) Lookup(ref FileRef) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, err := c.load()
	if err != nil {
		return "", false
	}

	entry, ok := cached[ref.Path]
	if !ok || entry.Size != ref.Size || entry.ModTime != ref.ModTime.UnixNano() {
		return "", false
	}
	return entry.Digest, true
}

// Store remembers digest for the current revision of ref.
func (c *FingerprintCache) Store(ref FileRef, digest string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, err := c.load()
	if err != nil {
		return fmt.Errorf("load fingerprints: %w", err)
	}

	cached[ref.Path] = cachedFingerprint{
		Size:    ref.Size,
		ModTime: ref.ModTime.UnixNano(),
		Digest:  digest,
	}
	return c.cacher.Set(cached)
}
