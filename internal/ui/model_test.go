package ui

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/media"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("When nothing was notified", func() {
			Convey("Then the view is unchanged", func() {
				So(m.View("a\nb"), ShouldEqual, "a\nb")
			})
		})

		Convey("When a notification arrives", func() {
			cmd := m.Update(NotificationMsg("hello"))

			Convey("Then it is appended to the last line and a clear is scheduled", func() {
				So(cmd, ShouldNotBeNil)
				So(m.Notification(), ShouldEqual, "hello")
				So(m.View("a\nb"), ShouldStartWith, "a\nb  ")
				So(m.View("a\nb"), ShouldContainSubstring, "hello")
			})

			Convey("Then a clear for it removes it", func() {
				m.Update(ClearNotificationMsg{at: m.notifiedAt})
				So(m.Notification(), ShouldBeEmpty)
			})

			Convey("Then a stale clear is ignored", func() {
				m.Update(ClearNotificationMsg{})
				So(m.Notification(), ShouldEqual, "hello")
			})
		})

		Convey("When a rejected file is reported", func() {
			msg := NotifyError(&media.RejectedFile{Name: "notes.txt", Reason: "unsupported-type"})()

			Convey("Then the file name and reason are shown", func() {
				So(msg, ShouldHaveSameTypeAs, NotificationMsg(""))
				So(string(msg.(NotificationMsg)), ShouldContainSubstring, "notes.txt is not a playable video (unsupported-type)")
			})
		})

		Convey("When another error is reported", func() {
			msg := NotifyError(errors.New("boom"))()

			Convey("Then its text is shown", func() {
				So(string(msg.(NotificationMsg)), ShouldContainSubstring, "boom")
			})
		})
	})
}
