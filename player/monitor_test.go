package player

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMonitor(t *testing.T) {
	Convey("Given a monitor on a fake process", t, func() {
		proc := &fakeProcess{pid: 7, exited: make(chan struct{})}
		ticker := newManualTicker()
		inbox := make(chan any)

		m := startMonitor(3, proc, ticker.ticker, time.Second, inbox)

		Convey("ticks are tagged with the session", func() {
			go func() { ticker.c <- time.Now() }()
			So(<-inbox, ShouldResemble, tick{session: 3})
			m.stop()
		})

		Convey("an exit is reported and ends the monitor", func() {
			proc.exit(errors.New("exit status 1"))

			msg := (<-inbox).(exited)
			So(msg.session, ShouldEqual, 3)
			So(msg.err, ShouldBeError, "exit status 1")

			select {
			case <-m.done:
			case <-time.After(time.Second):
				So("monitor still running", ShouldBeEmpty)
			}
		})

		Convey("stop returns even if nobody reads the inbox", func() {
			proc.exit(nil)
			time.Sleep(10 * time.Millisecond)

			stopped := make(chan struct{})
			go func() {
				m.stop()
				close(stopped)
			}()

			select {
			case <-stopped:
			case <-time.After(time.Second):
				So("stop blocked", ShouldBeEmpty)
			}
		})

		Convey("stop can be called twice", func() {
			m.stop()
			m.stop()
			_, open := <-m.quit
			So(open, ShouldBeFalse)
		})
	})
}
