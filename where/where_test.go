package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/filesystem"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Fingerprints()", func() {
			path := Fingerprints()
			So(path, ShouldEndWith, "fingerprints.json")
			So(lo.Must(filesystem.API().IsDir(filepath.Dir(path))), ShouldBeTrue)
		})

		Convey("History()", func() {
			So(History(), ShouldEqual, filepath.Join(Config(), "history.json"))
		})

		Convey("Journal()", func() {
			path := Journal()
			So(path, ShouldEndWith, "events.jsonl")
			So(lo.Must(filesystem.API().IsDir(filepath.Dir(path))), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
