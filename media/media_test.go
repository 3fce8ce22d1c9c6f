package media

import (
	"errors"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/filesystem"
)

type fakeAllocator struct {
	next     int
	live     map[string]bool
	released []string
	events   []string
	fail     error
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{live: make(map[string]bool)}
}

func (f *fakeAllocator) Allocate(ref FileRef) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	f.next++
	url := fmt.Sprintf("blob:%d", f.next)
	f.live[url] = true
	f.events = append(f.events, "allocate "+url)
	return url, nil
}

func (f *fakeAllocator) Release(url string) error {
	if !f.live[url] {
		return errors.New("unknown handle")
	}
	delete(f.live, url)
	f.released = append(f.released, url)
	f.events = append(f.events, "release "+url)
	return nil
}

func writeFile(path, content string) {
	So(filesystem.API().WriteFile(path, []byte(content), 0o644), ShouldBeNil)
}

func TestAcceptance(t *testing.T) {
	Convey("Given the default acceptance", t, func() {
		acceptance := Acceptance{MimePrefixes: []string{"video/"}, Extensions: []string{"mkv", "mp4", "webm", "ogg"}}

		Convey("A declared video type is accepted whatever the name", func() {
			So(acceptance.Accepts(FileRef{Name: "clip.bin", Type: "video/quicktime"}), ShouldBeTrue)
		})

		Convey("A known container is accepted without a declared type", func() {
			So(acceptance.Accepts(FileRef{Name: "movie.MKV"}), ShouldBeTrue)
			So(acceptance.Accepts(FileRef{Name: "movie.webm", Type: "application/octet-stream"}), ShouldBeTrue)
		})

		Convey("Everything else is rejected", func() {
			So(acceptance.Accepts(FileRef{Name: "notes.txt", Type: "text/plain"}), ShouldBeFalse)
			So(acceptance.Accepts(FileRef{Name: "mkv"}), ShouldBeFalse)
			So(acceptance.Accepts(FileRef{Name: "song.mp3", Type: "audio/mpeg"}), ShouldBeFalse)
		})
	})
}

func TestFingerprint(t *testing.T) {
	Convey("Given a file on the active filesystem", t, func() {
		filesystem.SetMemMapFs()
		writeFile("/media/a.mp4", "abc")

		Convey("Its fingerprint is the SHA-256 of its content", func() {
			digest, err := Fingerprint("/media/a.mp4")
			So(err, ShouldBeNil)
			So(digest, ShouldEqual, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
		})

		Convey("A missing file fails", func() {
			_, err := Fingerprint("/media/missing.mp4")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFingerprintCache(t *testing.T) {
	Convey("Given a fingerprint cache", t, func() {
		filesystem.SetMemMapFs()
		cache := NewFingerprintCache("/cache/fingerprints.json")
		ref := FileRef{Path: "/media/a.mp4", Size: 3, ModTime: time.Unix(100, 0)}

		Convey("An unknown file misses", func() {
			_, ok := cache.Lookup(ref)
			So(ok, ShouldBeFalse)
		})

		Convey("A stored digest is found for the same revision only", func() {
			So(cache.Store(ref, "digest"), ShouldBeNil)

			digest, ok := cache.Lookup(ref)
			So(ok, ShouldBeTrue)
			So(digest, ShouldEqual, "digest")

			changed := ref
			changed.Size = 4
			_, ok = cache.Lookup(changed)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestLoader(t *testing.T) {
	Convey("Given a loader", t, func() {
		filesystem.SetMemMapFs()
		writeFile("/media/a.mp4", "first")
		writeFile("/media/b.mkv", "second")
		writeFile("/media/notes.txt", "text")

		alloc := newFakeAllocator()
		loader := NewLoader(Options{RoomID: 12345, Allocator: alloc})

		Convey("It starts without a source", func() {
			So(loader.Current().IsAbsent(), ShouldBeTrue)
		})

		Convey("Loading a video produces a fingerprinted source for the room", func() {
			source, err := loader.Load("/media/a.mp4")
			So(err, ShouldBeNil)
			So(source.URL, ShouldEqual, "blob:1")
			So(source.RoomID, ShouldEqual, 12345)
			So(source.File.Name, ShouldEqual, "a.mp4")
			So(source.Fingerprint, ShouldHaveLength, 64)

			Convey("It becomes current only on commit", func() {
				So(loader.Current().IsAbsent(), ShouldBeTrue)

				loader.Commit(source)
				current, ok := loader.Current().Get()
				So(ok, ShouldBeTrue)
				So(current, ShouldEqual, source)
				So(alloc.released, ShouldBeEmpty)
			})
		})

		Convey("Replacing a source keeps the previous handle until the next one is committed", func() {
			first, err := loader.Load("/media/a.mp4")
			So(err, ShouldBeNil)
			loader.Commit(first)

			second, err := loader.Load("/media/b.mkv")
			So(err, ShouldBeNil)
			So(alloc.released, ShouldBeEmpty)
			So(loader.Current().MustGet().URL, ShouldEqual, "blob:1")

			loader.Commit(second)
			So(alloc.released, ShouldResemble, []string{"blob:1"})
			So(alloc.events, ShouldResemble, []string{"allocate blob:1", "allocate blob:2", "release blob:1"})
			So(loader.Current().MustGet().URL, ShouldEqual, "blob:2")

			Convey("Committing the same source again releases nothing", func() {
				loader.Commit(second)
				So(alloc.released, ShouldResemble, []string{"blob:1"})
			})
		})

		Convey("Rolling back a pending source releases only its handle", func() {
			first, _ := loader.Load("/media/a.mp4")
			loader.Commit(first)

			second, err := loader.Load("/media/b.mkv")
			So(err, ShouldBeNil)
			loader.Rollback(second)

			So(alloc.released, ShouldResemble, []string{"blob:2"})
			So(loader.Current().MustGet().URL, ShouldEqual, "blob:1")

			Convey("The current source cannot be rolled back", func() {
				loader.Rollback(first)
				So(alloc.released, ShouldResemble, []string{"blob:2"})
			})
		})

		Convey("A rejected file leaves the current source intact", func() {
			first, err := loader.Load("/media/a.mp4")
			So(err, ShouldBeNil)
			loader.Commit(first)

			_, err = loader.Load("/media/notes.txt")
			var rejected *RejectedFile
			So(errors.As(err, &rejected), ShouldBeTrue)
			So(rejected.Reason, ShouldEqual, "unsupported-type")
			So(rejected.Name, ShouldEqual, "notes.txt")

			So(loader.Current().MustGet().URL, ShouldEqual, "blob:1")
			So(alloc.released, ShouldBeEmpty)
		})

		Convey("A missing file of the wrong kind is rejected before it is looked up", func() {
			_, err := loader.Load("/media/document.pdf")
			var rejected *RejectedFile
			So(errors.As(err, &rejected), ShouldBeTrue)
			So(rejected.Name, ShouldEqual, "document.pdf")
		})

		Convey("A missing video is a lookup error", func() {
			_, err := loader.Load("/media/missing.mkv")
			So(err, ShouldNotBeNil)
			var rejected *RejectedFile
			So(errors.As(err, &rejected), ShouldBeFalse)
		})

		Convey("An empty selection returns no source and Clear releases the current one", func() {
			first, _ := loader.Load("/media/a.mp4")
			loader.Commit(first)

			source, err := loader.Load("")
			So(err, ShouldBeNil)
			So(source, ShouldBeNil)
			So(loader.Current().IsPresent(), ShouldBeTrue)

			loader.Clear()
			So(loader.Current().IsAbsent(), ShouldBeTrue)
			So(alloc.released, ShouldResemble, []string{"blob:1"})
		})

		Convey("Close releases the current handle exactly once", func() {
			first, _ := loader.Load("/media/a.mp4")
			loader.Commit(first)
			So(loader.Close(), ShouldBeNil)
			So(loader.Close(), ShouldBeNil)
			So(alloc.released, ShouldResemble, []string{"blob:1"})
		})

		Convey("An allocation failure keeps the previous source", func() {
			first, _ := loader.Load("/media/a.mp4")
			loader.Commit(first)
			alloc.fail = errors.New("no handles")

			_, err := loader.Load("/media/b.mkv")
			So(err, ShouldNotBeNil)
			So(loader.Current().MustGet().URL, ShouldEqual, "blob:1")
		})

		Convey("Fingerprints are reused from the cache", func() {
			cache := NewFingerprintCache("/cache/fingerprints.json")
			cached := NewLoader(Options{RoomID: 1, Allocator: alloc, Cache: cache})

			ref, err := Stat("/media/a.mp4")
			So(err, ShouldBeNil)
			So(cache.Store(ref, "remembered"), ShouldBeNil)

			source, err := cached.LoadFile(ref)
			So(err, ShouldBeNil)
			So(source.Fingerprint, ShouldEqual, "remembered")
		})
	})
}
