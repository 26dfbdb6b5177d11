package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/field"
)

func setupTest(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig()
	s, err := New(cfg, nil, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", path, w.Code)
	}
	return w
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, s *Server) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(s.Handler())
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		server.Close()
		t.Fatalf("websocket dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func TestIndex(t *testing.T) {
	s := setupTest(t)
	body := get(t, s, "/").Body.String()

	if !strings.Contains(body, "Jane Doe") {
		t.Error("missing profile name")
	}
	if !strings.Contains(body, "<strong>machine learning systems</strong>") {
		t.Error("about markdown not rendered")
	}
	if !strings.Contains(body, `data-category="ml cv"`) {
		t.Error("missing project categories")
	}
}

func TestFieldSVG(t *testing.T) {
	s := setupTest(t)
	s.Step()

	w := get(t, s, "/field.svg")
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("unexpected content type %q", ct)
	}
	if got := strings.Count(w.Body.String(), "<circle"); got != 204 {
		t.Errorf("expected 204 circles, got %d", got)
	}
}

func TestFieldJSON(t *testing.T) {
	s := setupTest(t)
	s.Step()
	s.Step()

	var snap Snapshot
	if err := json.Unmarshal(get(t, s, "/api/field").Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := field.Count(1280, 2400, field.DefaultDensity); len(snap.Points) != want {
		t.Errorf("expected %d points, got %d", want, len(snap.Points))
	}
	if snap.Stats.Frame != 1 {
		t.Errorf("expected frame 1, got %d", snap.Stats.Frame)
	}
	if snap.Width != 1280 || snap.Height != 2400 {
		t.Errorf("unexpected size %vx%v", snap.Width, snap.Height)
	}
}

func TestProjects(t *testing.T) {
	tests := []struct {
		query    string
		expected int
	}{
		{"", 4},
		{"?filter=all", 4},
		{"?filter=cv", 2},
		{"?filter=security", 1},
		{"?filter=nothing", 0},
	}

	s := setupTest(t)
	for _, tt := range tests {
		var resp struct {
			Filter   string            `json:"filter"`
			Projects []json.RawMessage `json:"projects"`
		}
		if err := json.Unmarshal(get(t, s, "/api/projects"+tt.query).Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Projects) != tt.expected {
			t.Errorf("%q: expected %d projects, got %d", tt.query, tt.expected, len(resp.Projects))
		}
	}
}

func TestTime(t *testing.T) {
	s := setupTest(t)
	var resp struct {
		Time string `json:"time"`
	}
	if err := json.Unmarshal(get(t, s, "/api/time").Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(resp.Time, " IST") {
		t.Errorf("expected IST label, got %q", resp.Time)
	}
}

func TestWebSocketPointer(t *testing.T) {
	s := setupTest(t)
	conn, closeAll := dial(t, s)
	defer closeAll()

	waitFor(t, "subscription", func() bool { return s.hub.len() == 1 })

	if err := conn.WriteJSON(inbound{Type: "pointer", X: 120, Y: 340}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, "pointer", func() bool { return s.Snapshot().Pointer == [2]float64{120, 340} })

	st := s.Step()

	var ev frameEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != "frame" {
		t.Errorf("expected frame event, got %q", ev.Type)
	}
	if ev.Pointer != [2]float64{120, 340} {
		t.Errorf("unexpected pointer %v", ev.Pointer)
	}
	if ev.Stats != st {
		t.Errorf("expected stats %+v, got %+v", st, ev.Stats)
	}
}

func TestWebSocketResize(t *testing.T) {
	s := setupTest(t)
	conn, closeAll := dial(t, s)
	defer closeAll()

	if err := conn.WriteJSON(inbound{Type: "resize", Width: 300, Height: 300}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, "resize", func() bool { return s.Snapshot().Width == 300 })

	if got := len(s.Snapshot().Points); got != 6 {
		t.Errorf("expected 6 points after resize, got %d", got)
	}
}

func TestWebSocketResize_Bounded(t *testing.T) {
	s := setupTest(t)
	conn, closeAll := dial(t, s)
	defer closeAll()

	tests := []struct {
		name string
		msg  string
	}{
		{"overflowing", `{"type":"resize","width":1e300,"height":1e300}`},
		{"too wide", `{"type":"resize","width":100000,"height":100}`},
		{"too tall", `{"type":"resize","width":100,"height":100000}`},
		{"zero", `{"type":"resize","width":0,"height":100}`},
	}
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.msg)); err != nil {
			t.Fatalf("%s: write: %v", tt.name, err)
		}
		var ev errorEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("%s: read: %v", tt.name, err)
		}
		if ev.Type != "error" {
			t.Errorf("%s: expected error event, got %+v", tt.name, ev)
		}
	}

	snap := s.Snapshot()
	if snap.Width != 1280 || snap.Height != 2400 {
		t.Errorf("surface changed to %vx%v", snap.Width, snap.Height)
	}
	if want := field.Count(1280, 2400, field.DefaultDensity); len(snap.Points) != want {
		t.Errorf("expected %d points, got %d", want, len(snap.Points))
	}
}

func TestWebSocketBadMessage(t *testing.T) {
	s := setupTest(t)
	conn, closeAll := dial(t, s)
	defer closeAll()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var ev errorEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != "error" || ev.Message != "invalid message format" {
		t.Errorf("unexpected event %+v", ev)
	}

	if err := conn.WriteJSON(inbound{Type: "wiggle"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(ev.Message, "unknown message type") {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.FPS = 200
	s, err := New(cfg, nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	waitFor(t, "frames", func() bool { return s.Snapshot().Stats.Frame > 2 })
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
