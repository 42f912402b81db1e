package player

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/djecho/djecho/constant"
	"github.com/djecho/djecho/filesystem"
	"github.com/djecho/djecho/log"
	"github.com/google/uuid"
)

type ipcCommand struct {
	Command []any `json:"command"`
}

type ipcResponse struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
	readBufSize  = 4096

	controlQueueSize = 16
)

// mpvControl forwards pause and volume changes to mpv over its JSON-IPC socket.
// Everything it does is best effort: failures are logged and never reach callers.
type mpvControl struct {
	socket   string
	mu       sync.Mutex
	queue    chan []any
	done     chan struct{}
	querying atomic.Bool
}

func newSocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.sock", constant.App, uuid.NewString()[:8]))
}

func newMPVControl(socket string) *mpvControl {
	c := &mpvControl{
		socket: socket,
		queue:  make(chan []any, controlQueueSize),
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *mpvControl) run() {
	defer close(c.done)
	for command := range c.queue {
		if _, err := c.send(command); err != nil {
			log.Warnf("mpv ipc %v: %s", command[0], err)
		}
	}
}

// post queues a command without blocking; it is dropped when the queue is full.
func (c *mpvControl) post(command ...any) {
	select {
	case c.queue <- command:
	default:
		log.Warnf("mpv ipc queue full, dropping %v", command[0])
	}
}

func (c *mpvControl) setPause(paused bool) {
	c.post("set_property", "pause", paused)
}

func (c *mpvControl) setVolume(level int) {
	c.post("set_property", "volume", level)
}

// queryDuration asks mpv for the track length in the background and hands the
// result to report. Only one query is in flight at a time.
func (c *mpvControl) queryDuration(report func(seconds int)) {
	if !c.querying.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer c.querying.Store(false)

		data, err := c.send([]any{"get_property", "duration"})
		if err != nil {
			log.Debugf("mpv duration: %s", err)
			return
		}

		if seconds, ok := data.(float64); ok && seconds > 0 {
			report(int(seconds))
		}
	}()
}

func (c *mpvControl) close() {
	close(c.queue)
	<-c.done
	_ = filesystem.API().Remove(c.socket)
}

func (c *mpvControl) send(command []any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := sendCommand(c.socket, command)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

func sendCommand(socket string, command []any) (any, error) {
	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv reads newline-delimited JSON
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	buf := make([]byte, readBufSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var resp ipcResponse
	if err := json.Unmarshal(buf[:n], &resp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if resp.Error != "" && resp.Error != "success" {
		return nil, fmt.Errorf("mpv error: %s", resp.Error)
	}

	return resp.Data, nil
}
