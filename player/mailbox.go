package player

import "sync"

// mailbox delivers events to one subscriber in order on its own goroutine.
// It is unbounded so the owner never waits for a slow subscriber.
type mailbox struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

func newMailbox(fn func(Event)) *mailbox {
	m := &mailbox{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go m.run(fn)
	return m
}

func (m *mailbox) push(e Event) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, e)
	m.mu.Unlock()

	m.signal()
}

func (m *mailbox) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// close stops accepting events. Queued events are still delivered.
func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.signal()
}

func (m *mailbox) run(fn func(Event)) {
	defer close(m.done)

	for {
		m.mu.Lock()
		batch, closed := m.queue, m.closed
		m.queue = nil
		m.mu.Unlock()

		for _, e := range batch {
			fn(e)
		}

		if closed && len(batch) == 0 {
			return
		}
		if len(batch) == 0 {
			<-m.wake
		}
	}
}
