// Package spectate broadcasts game snapshots to read-only websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Path is where viewers connect.
const Path = "/ws"

const (
	sendBuffer   = 16 // queued frames per viewer before frames are dropped
	writeTimeout = 5 * time.Second
)

// Frame is the message sent to viewers for every published snapshot.
type Frame struct {
	Session  string          `json:"session"`
	Game     string          `json:"game"`
	Snapshot json.RawMessage `json:"snapshot"`
}

var upgrader = websocket.Upgrader{
	// Viewers are read-only; any page may embed the feed.
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

type viewer struct {
	id      string
	session string // empty follows every session
	ws      *websocket.Conn
	send    chan []byte
}

// Hub fans published snapshots out to connected viewers. A slow viewer
// loses frames instead of stalling the game loop.
type Hub struct {
	mu      sync.RWMutex
	viewers map[string]*viewer
	logger  *log.Logger
}

// NewHub creates an empty hub. logger may be nil.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		viewers: make(map[string]*viewer),
		logger:  logger.WithPrefix("spectate"),
	}
}

// Publish encodes snapshot and queues it for every viewer following sessionID.
func (h *Hub) Publish(sessionID, gameID string, snapshot any) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.Warn("cannot encode snapshot", "session", sessionID, "err", err)
		return
	}
	data, err := json.Marshal(Frame{Session: sessionID, Game: gameID, Snapshot: raw})
	if err != nil {
		h.logger.Warn("cannot encode frame", "session", sessionID, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, v := range h.viewers {
		if v.session != "" && v.session != sessionID {
			continue
		}
		select {
		case v.send <- data:
		default:
			h.logger.Debug("viewer lagging, frame dropped", "viewer", v.id)
		}
	}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

func (h *Hub) add(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewers[v.id] = v
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v, ok := h.viewers[id]; ok {
		close(v.send)
		delete(h.viewers, id)
	}
}

// ServeHTTP upgrades the request and streams frames until the viewer leaves.
// The optional ?session= query restricts the feed to one session.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	v := &viewer{
		id:      uuid.NewString(),
		session: r.URL.Query().Get("session"),
		ws:      ws,
		send:    make(chan []byte, sendBuffer),
	}
	h.add(v)
	h.logger.Info("viewer joined", "viewer", v.id, "remote", r.RemoteAddr, "session", v.session)

	go h.writeLoop(v)
	h.readLoop(v)

	h.remove(v.id)
	h.logger.Info("viewer left", "viewer", v.id)
}

// readLoop discards client messages and returns when the connection closes.
func (h *Hub) readLoop(v *viewer) {
	for {
		if _, _, err := v.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(v *viewer) {
	defer v.ws.Close()
	for data := range v.send {
		_ = v.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := v.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("write failed", "viewer", v.id, "err", err)
			return
		}
	}
	_ = v.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Handler returns a mux serving the hub at Path.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// ListenAndServe serves viewers on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	h.logger.Info("spectator feed listening", "address", addr, "path", Path)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
