package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/filesystem"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(2, "video", "videos"), ShouldEqual, "2 videos")
		So(Quantify(0, "video", "videos"), ShouldEqual, "0 videos")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("event journal"), ShouldEqual, "Event journal")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("/videos/movie.mkv"), ShouldEqual, "movie")
		So(FileStem("movie"), ShouldEqual, "movie")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("A file is removed", func() {
			So(fs.WriteFile("/tmp/watchroom/a.json", []byte("{}"), 0o644), ShouldBeNil)
			So(Delete("/tmp/watchroom/a.json"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/watchroom/a.json")
			So(exists, ShouldBeFalse)
		})

		Convey("A directory is removed with its content", func() {
			So(fs.WriteFile("/tmp/watchroom/dir/b.json", []byte("{}"), 0o644), ShouldBeNil)
			So(Delete("/tmp/watchroom/dir"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/watchroom/dir")
			So(exists, ShouldBeFalse)
		})

		Convey("A missing path is an error", func() {
			So(Delete("/tmp/watchroom/missing"), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)
		So(s.Pop(), ShouldEqual, 0)

		s.Push(3)
		s.Clear()
		So(s.Len(), ShouldEqual, 0)
	})
}
