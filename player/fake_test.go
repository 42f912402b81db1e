package player

import (
	"errors"
	"sync"
	"time"
)

type fakeProcess struct {
	pid        int
	args       []string
	exited     chan struct{}
	once       sync.Once
	err        error
	terminated bool
	ignoreTerm bool
	mu         sync.Mutex
}

func (p *fakeProcess) PID() int                { return p.pid }
func (p *fakeProcess) Exited() <-chan struct{} { return p.exited }

func (p *fakeProcess) ExitErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakeProcess) exit(err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.exited)
	})
}

func (p *fakeProcess) Terminate() error {
	p.mu.Lock()
	p.terminated = true
	ignore := p.ignoreTerm
	p.mu.Unlock()

	if !ignore {
		p.exit(nil)
	}
	return nil
}

func (p *fakeProcess) Kill() error {
	p.exit(errors.New("signal: killed"))
	return nil
}

func (p *fakeProcess) alive() bool {
	select {
	case <-p.exited:
		return false
	default:
		return true
	}
}

type fakeLauncher struct {
	mu         sync.Mutex
	procs      []*fakeProcess
	fail       error
	ignoreTerm bool
}

func (l *fakeLauncher) Launch(binary string, args []string) (Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fail != nil {
		return nil, l.fail
	}

	p := &fakeProcess{
		pid:        1000 + len(l.procs),
		args:       append([]string{binary}, args...),
		exited:     make(chan struct{}),
		ignoreTerm: l.ignoreTerm,
	}
	l.procs = append(l.procs, p)
	return p, nil
}

func (l *fakeLauncher) live() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, p := range l.procs {
		if p.alive() {
			n++
		}
	}
	return n
}

func (l *fakeLauncher) last() *fakeProcess {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.procs[len(l.procs)-1]
}

// manualTicker hands every monitor the same channel so a test decides when time passes.
type manualTicker struct {
	c chan time.Time
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time)}
}

func (m *manualTicker) ticker(time.Duration) (<-chan time.Time, func()) {
	return m.c, func() {}
}

// recorder collects events in delivery order.
type recorder struct {
	events chan Event
}

func newRecorder(s *Supervisor) *recorder {
	r := &recorder{events: make(chan Event, 64)}
	s.Subscribe(func(e Event) { r.events <- e })
	return r
}

func (r *recorder) next() Event {
	select {
	case e := <-r.events:
		return e
	case <-time.After(2 * time.Second):
		return nil
	}
}

func (r *recorder) take(n int) []Event {
	out := make([]Event, 0, n)
	for range n {
		e := r.next()
		if e == nil {
			break
		}
		out = append(out, e)
	}
	return out
}

// quiet reports whether no further event shows up shortly.
func (r *recorder) quiet() bool {
	select {
	case <-r.events:
		return false
	case <-time.After(50 * time.Millisecond):
		return true
	}
}

func waitUntil(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}
