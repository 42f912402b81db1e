// Package broadcast streams playback events to websocket clients as JSON.
package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/djecho/djecho/log"
	"github.com/djecho/djecho/player"
	"github.com/djecho/djecho/source"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
	clientBuffer = 32
)

// Message is the JSON sent for every event. A client receives a "state" message
// describing the current snapshot right after connecting.
type Message struct {
	Kind     string           `json:"kind"`
	Status   string           `json:"status,omitempty"`
	Title    string           `json:"title,omitempty"`
	URI      string           `json:"uri,omitempty"`
	Source   *source.Document `json:"source,omitempty"`
	Level    *int             `json:"level,omitempty"`
	Position *int             `json:"position,omitempty"`
	Duration *int             `json:"duration,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// FromEvent converts a player event into its wire form.
func FromEvent(e player.Event) Message {
	msg := Message{Kind: e.Kind()}

	switch e := e.(type) {
	case player.Playing:
		doc := e.Source.Document()
		msg.Title, msg.URI, msg.Source = e.Title, e.URI, &doc
	case player.VolumeChanged:
		msg.Level = lo.ToPtr(e.Level)
	case player.Finished:
		if e.Err != nil {
			msg.Error = e.Err.Error()
		}
	}

	return msg
}

// FromState describes a snapshot.
func FromState(st player.State) Message {
	msg := Message{
		Kind:     "state",
		Status:   string(st.Status),
		Title:    st.TrackTitle.OrEmpty(),
		URI:      st.TrackURI.OrEmpty(),
		Level:    lo.ToPtr(st.Volume),
		Position: lo.ToPtr(st.PositionSeconds),
		Duration: lo.ToPtr(st.DurationSeconds),
	}
	if d, ok := st.Source.Get(); ok {
		doc := d.Document()
		msg.Source = &doc
	}
	return msg
}

type client struct {
	conn *websocket.Conn
	send chan Message
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub fans events out to every connected client. A client that cannot keep up
// is disconnected instead of slowing the others down.
type Hub struct {
	status   func() player.State
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(status func() player.State) *Hub {
	h := &Hub{
		status:  status,
		clients: make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
	return h
}

// checkOrigin accepts native clients, same-origin pages and localhost.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if u.Host == r.Host {
		return true
	}

	host := u.Hostname()
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}

	log.Warnf("rejected websocket origin %s", origin)
	return false
}

// Observe is a player subscriber.
func (h *Hub) Observe() func(player.Event) {
	return func(e player.Event) {
		h.Broadcast(FromEvent(e))
	}
}

func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Warn("websocket client too slow, dropping it")
			delete(h.clients, c)
			c.close()
		}
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("websocket upgrade: %s", err)
		return
	}

	c := &client{conn: conn, send: make(chan Message, clientBuffer)}
	c.send <- FromState(h.status())

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	log.Infof("websocket client connected from %s", r.RemoteAddr)

	go h.write(c)
	h.read(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// read discards client messages and notices disconnects.
func (h *Hub) read(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("websocket read: %s", err)
			}
			return
		}
	}
}

func (h *Hub) write(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Warnf("websocket write: %s", err)
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

// Shutdown disconnects every client.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

// Serve listens on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(FromState(h.status()))
	})

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		h.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("status feed listening on ws://%s/ws", listener.Addr())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Address normalizes a listen address, defaulting the host to localhost.
func Address(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	return addr
}
