package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/djecho/djecho/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a test server", t, func() {
		var agent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
		}))
		Reset(server.Close)

		Convey("the shared client sends the djecho user agent", func() {
			resp, err := Client.Get(server.URL)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(agent, ShouldEqual, constant.UserAgent)
		})

		Convey("an explicit user agent is kept", func() {
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := Client.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(agent, ShouldEqual, "custom")
		})
	})
}
