package log

import (
	"bytes"
	"testing"

	"github.com/djecho/djecho/key"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestFacade(t *testing.T) {
	Convey("Given the log facade", t, func() {
		Convey("Disabled logging swallows messages", func() {
			enabled = false
			var buf bytes.Buffer
			logrus.SetOutput(&buf)
			Infof("hidden %d", 1)
			So(buf.Len(), ShouldEqual, 0)
		})

		Convey("SetOutput enables logging with the configured level", func() {
			viper.Set(key.LogsLevel, "warn")
			var buf bytes.Buffer
			SetOutput(&buf)

			Info("not shown")
			Warnf("player %s exited", "mpv")

			So(buf.String(), ShouldNotContainSubstring, "not shown")
			So(buf.String(), ShouldContainSubstring, "player mpv exited")
		})

		Convey("WithFields attaches structured fields", func() {
			viper.Set(key.LogsLevel, "info")
			var buf bytes.Buffer
			SetOutput(&buf)

			WithFields(logrus.Fields{"pid": 42}).Info("spawned")
			So(buf.String(), ShouldContainSubstring, "pid=42")
		})
	})
}
