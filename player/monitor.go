package player

import "time"

// Messages the monitor sends to the owner. session ties them to the play
// session that started the monitor so stale ones can be dropped.
type (
	tick struct {
		session uint64
	}

	exited struct {
		session uint64
		err     error
	}
)

// TickerFunc creates the ticker driving a monitor.
type TickerFunc func(interval time.Duration) (ticks <-chan time.Time, stop func())

func defaultTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// monitor watches one player process. It reports a tick every interval and the
// exit of the process, after which it stops on its own.
type monitor struct {
	quit chan struct{}
	done chan struct{}
}

func startMonitor(session uint64, proc Process, newTicker TickerFunc, interval time.Duration, inbox chan<- any) *monitor {
	m := &monitor{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}

	ticks, stopTicker := newTicker(interval)

	go func() {
		defer close(m.done)
		defer stopTicker()

		for {
			select {
			case <-m.quit:
				return
			case <-proc.Exited():
				m.send(inbox, exited{session: session, err: proc.ExitErr()})
				return
			case <-ticks:
				m.send(inbox, tick{session: session})
			}
		}
	}()

	return m
}

func (m *monitor) send(inbox chan<- any, msg any) {
	select {
	case inbox <- msg:
	case <-m.quit:
	}
}

// stop returns once the monitor goroutine is gone, so no tick can arrive afterwards.
func (m *monitor) stop() {
	select {
	case <-m.quit:
	default:
		close(m.quit)
	}
	<-m.done
}
