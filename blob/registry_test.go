package blob

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/media"
)

func get(url string, headers map[string]string) (int, string) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	So(err, ShouldBeNil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := http.DefaultClient.Do(req)
	So(err, ShouldBeNil)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	So(err, ShouldBeNil)
	return res.StatusCode, string(body)
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry behind a test server", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/media/a.mp4", []byte("0123456789"), 0o644), ShouldBeNil)
		ref := media.FileRef{Name: "a.mp4", Path: "/media/a.mp4", Type: "video/mp4", Size: 10, ModTime: time.Unix(100, 0)}

		registry := New(true)
		server := httptest.NewServer(registry.Handler())
		defer server.Close()

		Convey("Allocating before a base is set fails", func() {
			_, err := registry.Allocate(ref)
			So(err, ShouldEqual, ErrNotStarted)
		})

		Convey("With a base URL", func() {
			registry.SetBase(server.URL)

			url, err := registry.Allocate(ref)
			So(err, ShouldBeNil)
			So(url, ShouldStartWith, server.URL+PathPrefix)
			So(registry.Active(), ShouldEqual, 1)

			Convey("The handle serves the file content", func() {
				status, body := get(url, nil)
				So(status, ShouldEqual, http.StatusOK)
				So(body, ShouldEqual, "0123456789")
			})

			Convey("The handle supports byte ranges", func() {
				status, body := get(url, map[string]string{"Range": "bytes=2-4"})
				So(status, ShouldEqual, http.StatusPartialContent)
				So(body, ShouldEqual, "234")
			})

			Convey("A released handle stops resolving", func() {
				So(registry.Release(url), ShouldBeNil)
				So(registry.Active(), ShouldEqual, 0)

				status, _ := get(url, nil)
				So(status, ShouldEqual, http.StatusNotFound)
			})

			Convey("Releasing twice reports an unknown handle", func() {
				So(registry.Release(url), ShouldBeNil)
				So(registry.Release(url), ShouldEqual, ErrUnknownHandle)
			})

			Convey("Foreign URLs are unknown", func() {
				So(registry.Release("http://example.com/blob/x"), ShouldEqual, ErrUnknownHandle)
			})

			Convey("Metrics are exposed", func() {
				_, _ = get(url, nil)
				status, body := get(server.URL+"/metrics", nil)
				So(status, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "watchroom_blob_handles_active 1")
				So(body, ShouldContainSubstring, "watchroom_blob_allocations_total 1")
			})
		})
	})
}

func TestRegistryStart(t *testing.T) {
	Convey("Given a started registry", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/media/b.webm", []byte("webm"), 0o644), ShouldBeNil)

		registry := New(false)
		So(registry.Start(), ShouldBeNil)
		defer registry.Close()

		url, err := registry.Allocate(media.FileRef{Name: "b.webm", Path: "/media/b.webm"})
		So(err, ShouldBeNil)
		So(url, ShouldStartWith, "http://127.0.0.1:")

		status, body := get(url, nil)
		So(status, ShouldEqual, http.StatusOK)
		So(body, ShouldEqual, "webm")
	})
}
