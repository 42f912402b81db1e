//go:build !windows

package player

import (
	"errors"
	"os/exec"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestExecLauncher(t *testing.T) {
	Convey("Given the exec launcher", t, func() {
		var launcher ExecLauncher

		Convey("a non-zero exit is reported as an exit error", func() {
			proc, err := launcher.Launch("sh", []string{"-c", "exit 3"})
			So(err, ShouldBeNil)
			So(proc.PID(), ShouldBeGreaterThan, 0)

			select {
			case <-proc.Exited():
			case <-time.After(5 * time.Second):
				t.Fatal("process did not exit")
			}

			var exitErr *exec.ExitError
			So(errors.As(proc.ExitErr(), &exitErr), ShouldBeTrue)
			So(exitErr.ExitCode(), ShouldEqual, 3)
		})

		Convey("terminate stops a running process", func() {
			proc, err := launcher.Launch("sleep", []string{"30"})
			So(err, ShouldBeNil)
			So(proc.ExitErr(), ShouldBeNil)

			So(proc.Terminate(), ShouldBeNil)
			select {
			case <-proc.Exited():
			case <-time.After(5 * time.Second):
				_ = proc.Kill()
				t.Fatal("process ignored SIGTERM")
			}
		})

		Convey("a missing binary fails to launch", func() {
			_, err := launcher.Launch("/nonexistent/djecho-player", nil)
			So(err, ShouldNotBeNil)
		})
	})
}
