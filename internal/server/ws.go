package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const clientBuffer = 4

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inbound is a websocket message from the page.
type inbound struct {
	Type   string  `json:"type"` // "pointer" or "resize"
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type frameEvent struct {
	Type string `json:"type"`
	Snapshot
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// hub fans frames out to connected clients. A client that cannot keep up
// misses frames rather than slowing the loop.
type hub struct {
	mu      sync.Mutex
	clients map[chan frameEvent]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[chan frameEvent]struct{})}
}

func (h *hub) subscribe() chan frameEvent {
	ch := make(chan frameEvent, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan frameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *hub) broadcast(ev frameEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	frames := s.hub.subscribe()
	defer s.hub.unsubscribe(frames)

	// conn allows one concurrent writer; everything below writes from here.
	errs := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.readLoop(conn, errs)
	}()

	for {
		select {
		case <-done:
			return
		case msg := <-errs:
			if err := conn.WriteJSON(errorEvent{Type: "error", Message: msg}); err != nil {
				log.Printf("server: websocket write: %v", err)
				return
			}
		case ev, ok := <-frames:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("server: websocket write: %v", err)
				return
			}
		}
	}
}

func (s *Server) readLoop(conn *websocket.Conn, errs chan<- string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var in inbound
		if err := json.Unmarshal(msg, &in); err != nil {
			sendErr(errs, "invalid message format")
			continue
		}

		switch in.Type {
		case "pointer":
			s.pointerMove(in.X, in.Y)
		case "resize":
			if msg := s.checkSize(in.Width, in.Height); msg != "" {
				sendErr(errs, msg)
				continue
			}
			s.resize(in.Width, in.Height)
		default:
			sendErr(errs, "unknown message type: "+in.Type)
		}
	}
}

// checkSize returns why a requested surface size is refused, or "".
func (s *Server) checkSize(w, h float64) string {
	switch {
	case math.IsNaN(w) || math.IsNaN(h) || w <= 0 || h <= 0:
		return "resize needs a positive width and height"
	case w > s.cfg.MaxWidth || h > s.cfg.MaxHeight:
		return fmt.Sprintf("resize exceeds %vx%v", s.cfg.MaxWidth, s.cfg.MaxHeight)
	}
	return ""
}

func sendErr(errs chan<- string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}
