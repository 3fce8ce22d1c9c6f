package relay

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/filesystem"
)

func TestEmitters(t *testing.T) {
	Convey("Given a recorder", t, func() {
		recorder := &Recorder{}
		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

		Convey("It keeps events in order", func() {
			recorder.Emit(Event{Type: Play, Timestamp: at})
			recorder.Emit(Event{Type: Pause, PositionSeconds: 4, Timestamp: at})
			So(recorder.Types(), ShouldResemble, []Type{Play, Pause})
			So(recorder.Events()[1].PositionSeconds, ShouldEqual, 4)
		})

		Convey("Multi fans out to every emitter", func() {
			other := &Recorder{}
			Multi(recorder, Discard, other).Emit(Event{Type: Seek})
			So(recorder.Types(), ShouldResemble, []Type{Seek})
			So(other.Types(), ShouldResemble, []Type{Seek})
		})

		Convey("Events serialize with the wire field names", func() {
			data, err := json.Marshal(Event{Type: Seek, PositionSeconds: 42, Timestamp: at})
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"type":"seek","positionSeconds":42,"timestamp":"2024-01-02T03:04:05Z"}`)
		})
	})
}

func TestJournal(t *testing.T) {
	Convey("Given a journal on an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		journal := NewJournal("/journal/events.jsonl")

		Convey("It appends one JSON line per event", func() {
			journal.Emit(Event{Type: Play, PositionSeconds: 1})
			journal.Emit(Event{Type: Pause, PositionSeconds: 2})

			content := string(lo.Must(filesystem.API().ReadFile("/journal/events.jsonl")))
			lines := strings.Split(strings.TrimSpace(content), "\n")
			So(lines, ShouldHaveLength, 2)

			var second Event
			So(json.Unmarshal([]byte(lines[1]), &second), ShouldBeNil)
			So(second.Type, ShouldEqual, Pause)
			So(second.PositionSeconds, ShouldEqual, 2)
		})
	})
}
