package spectate

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type testSnapshot struct {
	Score int `json:"score"`
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + Path + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitViewers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Viewers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", h.Viewers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, ws *websocket.Conn) Frame {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

func TestPublishReachesViewer(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv, "")
	waitViewers(t, hub, 1)

	hub.Publish("s1", "snake", testSnapshot{Score: 4})

	f := readFrame(t, ws)
	if f.Session != "s1" || f.Game != "snake" {
		t.Errorf("frame = %+v, want session s1 game snake", f)
	}
	var snap testSnapshot
	if err := json.Unmarshal(f.Snapshot, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Score != 4 {
		t.Errorf("score = %d, want 4", snap.Score)
	}
}

func TestSessionFilter(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv, "?session=b")
	waitViewers(t, hub, 1)

	hub.Publish("a", "snake", testSnapshot{Score: 1})
	hub.Publish("b", "snake_plus", testSnapshot{Score: 2})

	f := readFrame(t, ws)
	if f.Session != "b" || f.Game != "snake_plus" {
		t.Errorf("frame = %+v, want only session b", f)
	}
}

func TestViewerLeaves(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	ws := dial(t, srv, "")
	waitViewers(t, hub, 1)

	ws.Close()
	waitViewers(t, hub, 0)

	// Publishing with nobody listening is a no-op.
	hub.Publish("s1", "snake", testSnapshot{})
}

func TestPublishUnencodable(t *testing.T) {
	hub := NewHub(nil)
	hub.Publish("s1", "snake", func() {})
	if hub.Viewers() != 0 {
		t.Error("unexpected viewers")
	}
}
