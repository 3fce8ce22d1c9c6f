package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/controller"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/player"
	"github.com/watchroom-cli/watchroom/relay"
)

type stubAllocator struct {
	released []string
}

func (s *stubAllocator) Allocate(ref media.FileRef) (string, error) {
	return "blob:" + ref.Name, nil
}

func (s *stubAllocator) Release(url string) error {
	s.released = append(s.released, url)
	return nil
}

// handoverLog records handle and element calls in the order they happen.
type handoverLog struct {
	calls []string
}

func (h *handoverLog) Allocate(ref media.FileRef) (string, error) {
	url := "blob:" + ref.Name
	h.calls = append(h.calls, "allocate "+url)
	return url, nil
}

func (h *handoverLog) Release(url string) error {
	h.calls = append(h.calls, "release "+url)
	return nil
}

type loggedElement struct {
	*player.Simulated
	log     *handoverLog
	loadErr error
}

func (e *loggedElement) Load(url, title string) error {
	if e.loadErr != nil {
		return e.loadErr
	}
	e.log.calls = append(e.log.calls, "element load "+url)
	return e.Simulated.Load(url, title)
}

func runHandover(script string, loadErr error) (string, []string) {
	filesystem.SetMemMapFs()
	So(filesystem.API().WriteFile("/videos/a.mkv", []byte("first"), 0o644), ShouldBeNil)
	So(filesystem.API().WriteFile("/videos/b.mkv", []byte("second"), 0o644), ShouldBeNil)

	calls := &handoverLog{}
	element := &loggedElement{Simulated: player.NewSimulated(90 * time.Second), log: calls}
	loader := media.NewLoader(media.Options{RoomID: 7, Allocator: calls})
	options := &Options{
		Path:      "/videos/a.mkv",
		Session:   controller.Session{RoomID: 7, IsOwner: true},
		Loader:    loader,
		Element:   element,
		Emitter:   relay.Discard,
		HideAfter: time.Hour,
		Volume:    1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// the first source binds before any command runs, so later loads can be made to fail
	var out bytes.Buffer
	in := strings.NewReader(script)
	if loadErr != nil {
		options.Path = ""
		So(RunHeadless(ctx, options, strings.NewReader("open /videos/a.mkv\n"), &out), ShouldBeNil)
		element.loadErr = loadErr
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	So(RunHeadless(ctx, options, in, &out), ShouldBeNil)
	So(loader.Close(), ShouldBeNil)
	return out.String(), calls.calls
}

func runHeadless(owner bool, script string) (string, *relay.Recorder) {
	filesystem.SetMemMapFs()
	So(filesystem.API().WriteFile("/videos/movie.mkv", []byte("frames"), 0o644), ShouldBeNil)
	So(filesystem.API().WriteFile("/videos/notes.txt", []byte("text"), 0o644), ShouldBeNil)

	recorder := &relay.Recorder{}
	options := &Options{
		Path:      "/videos/movie.mkv",
		Session:   controller.Session{RoomID: 7, IsOwner: owner},
		Loader:    media.NewLoader(media.Options{RoomID: 7, Allocator: &stubAllocator{}}),
		Element:   player.NewSimulated(90 * time.Second),
		Emitter:   recorder,
		HideAfter: time.Hour,
		Volume:    1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	So(RunHeadless(ctx, options, strings.NewReader(script), &out), ShouldBeNil)
	return out.String(), recorder
}

func TestRunHeadless(t *testing.T) {
	Convey("Given an owner session", t, func() {
		Convey("Commands drive playback and report the state", func() {
			out, recorder := runHeadless(true, "status\nspace\nseek 30\nright\nm\nquit\n")
			lines := strings.Split(strings.TrimSpace(out), "\n")

			So(lines, ShouldHaveLength, 5)
			So(lines[0], ShouldEqual, "ready 00:00 / 01:30 volume=100% fullscreen=false")
			So(lines[1], ShouldStartWith, "playing 00:00 / 01:30")
			So(lines[2], ShouldStartWith, "playing 00:30 / 01:30")
			So(lines[3], ShouldStartWith, "playing 00:40 / 01:30")
			So(lines[4], ShouldEqual, "playing 00:40 / 01:30 volume=muted fullscreen=false")
			So(recorder.Types(), ShouldResemble, []relay.Type{relay.Source, relay.Play, relay.Seek, relay.Skip})
		})

		Convey("A rejected file is reported and the current source stays", func() {
			out, _ := runHeadless(true, "open /videos/notes.txt\nquit\n")
			So(out, ShouldContainSubstring, `rejected "notes.txt": unsupported-type`)
			So(out, ShouldContainSubstring, "ready 00:00 / 01:30")
		})

		Convey("Invalid arguments are reported", func() {
			out, _ := runHeadless(true, "seek soon\n")
			So(out, ShouldContainSubstring, `invalid seek target "soon"`)
		})

		Convey("Non-finite numbers are refused", func() {
			out, _ := runHeadless(true, "volume NaN\nseek +Inf\nstatus\n")
			So(out, ShouldContainSubstring, `invalid volume "NaN"`)
			So(out, ShouldContainSubstring, `invalid seek target "+Inf"`)
			So(out, ShouldContainSubstring, "ready 00:00 / 01:30 volume=100% fullscreen=false")
		})
	})

	Convey("Given a viewer session", t, func() {
		Convey("Transport commands and surface clicks are ignored", func() {
			out, recorder := runHeadless(false, "space\nclick\nright\nf\n")
			lines := strings.Split(strings.TrimSpace(out), "\n")

			So(lines, ShouldHaveLength, 4)
			So(lines[0], ShouldStartWith, "ready 00:00")
			So(lines[1], ShouldStartWith, "ready 00:00")
			So(lines[2], ShouldStartWith, "ready 00:00")
			So(lines[3], ShouldEndWith, "fullscreen=true")
			So(recorder.Events(), ShouldBeEmpty)
		})
	})
}

func TestSourceHandover(t *testing.T) {
	Convey("Given a bound source", t, func() {
		Convey("Opening another one releases the old handle after the element loads the new one", func() {
			_, calls := runHandover("open /videos/b.mkv\nquit\n", nil)
			So(calls, ShouldResemble, []string{
				"allocate blob:a.mkv",
				"element load blob:a.mkv",
				"allocate blob:b.mkv",
				"element load blob:b.mkv",
				"release blob:a.mkv",
				"release blob:b.mkv",
			})
		})

		Convey("A source the element refuses gives its handle back and keeps the old one", func() {
			out, calls := runHandover("open /videos/b.mkv\nquit\n", errors.New("engine gone"))
			So(out, ShouldContainSubstring, "engine gone")
			So(calls, ShouldResemble, []string{
				"allocate blob:a.mkv",
				"element load blob:a.mkv",
				"allocate blob:b.mkv",
				"release blob:b.mkv",
				"release blob:a.mkv",
			})
		})

		Convey("Opening nothing unbinds before releasing", func() {
			out, calls := runHandover("open\nstatus\nquit\n", nil)
			So(out, ShouldContainSubstring, "unbound")
			So(calls, ShouldResemble, []string{
				"allocate blob:a.mkv",
				"element load blob:a.mkv",
				"release blob:a.mkv",
			})
		})
	})
}
