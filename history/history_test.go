package history

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/media"
)

func init() {
	filesystem.SetMemMapFs()
}

func source(name, fingerprint string) *media.Source {
	return &media.Source{
		URL:         "blob:" + name,
		File:        media.FileRef{Name: name, Path: "/videos/" + name},
		Fingerprint: fingerprint,
		RoomID:      12345,
	}
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(cacher.Set(map[string]*Entry{}), ShouldBeNil)

		clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		now = func() time.Time { return clock }
		Reset(func() { now = time.Now })

		Convey("When a video is opened", func() {
			So(Save(source("movie.mkv", "abc")), ShouldBeNil)

			Convey("Then it is remembered under its fingerprint", func() {
				entries, err := Get()
				So(err, ShouldBeNil)
				So(entries, ShouldContainKey, "abc")
				So(entries["abc"].Path, ShouldEqual, "/videos/movie.mkv")
				So(entries["abc"].OpenedAt.Equal(clock), ShouldBeTrue)
			})

			Convey("Then its stop position survives reopening", func() {
				So(SavePosition(source("movie.mkv", "abc"), 30, 120), ShouldBeNil)

				clock = clock.Add(time.Hour)
				So(Save(source("renamed.mkv", "abc")), ShouldBeNil)

				entries, err := Get()
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries["abc"].Name, ShouldEqual, "renamed.mkv")
				So(entries["abc"].Position, ShouldEqual, 30)
				So(entries["abc"].Watched(), ShouldEqual, 25)
				So(entries["abc"].String(), ShouldEqual, "renamed.mkv : 25%")
			})

			Convey("Then it can be forgotten", func() {
				entries, _ := Get()
				So(Remove(entries["abc"]), ShouldBeNil)
				entries, _ = Get()
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When several videos are opened", func() {
			So(Save(source("a.mkv", "a")), ShouldBeNil)
			clock = clock.Add(time.Minute)
			So(Save(source("b.mkv", "b")), ShouldBeNil)
			clock = clock.Add(time.Minute)
			So(Save(source("c.mkv", "c")), ShouldBeNil)

			Convey("Then Recent lists the newest first", func() {
				entries, err := Recent(2)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Name, ShouldEqual, "c.mkv")
				So(entries[1].Name, ShouldEqual, "b.mkv")

				all, err := Recent(0)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 3)
			})
		})

		Convey("When a remembered file disappears", func() {
			So(filesystem.API().WriteFile("/videos/kept.mkv", []byte("x"), 0644), ShouldBeNil)
			So(Save(source("kept.mkv", "kept")), ShouldBeNil)
			So(Save(source("gone.mkv", "gone")), ShouldBeNil)

			Convey("Then pruning forgets only that file", func() {
				pruned, err := Prune()
				So(err, ShouldBeNil)
				So(pruned, ShouldEqual, 1)

				entries, _ := Get()
				So(entries, ShouldHaveLength, 1)
				So(entries, ShouldContainKey, "kept")
			})
		})

		Convey("An entry without a fingerprint is keyed by path", func() {
			So(SavePosition(source("raw.mkv", ""), 0, 0), ShouldBeNil)
			entries, _ := Get()
			So(entries, ShouldContainKey, "/videos/raw.mkv")
			So(entries["/videos/raw.mkv"].Watched(), ShouldEqual, 0)
		})
	})
}
