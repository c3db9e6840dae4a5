package web

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"challengesim/sim"
)

// event is the websocket frame pushed on every state change.
type event struct {
	Type  string       `json:"type"` // "state" or "passed"
	State sim.Snapshot `json:"state"`
}

// Hub fans engine snapshots out to connected websocket clients. It is
// the engine's listener: every applied trade during an auto-simulate
// batch produces one frame, which is what lets a browser watch the
// balance move trade by trade.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func newHub(allowedOrigins []string) *Hub {
	allowAll := false
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}

	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, o := range allowedOrigins {
					if o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	// Drain reads so close frames are processed; clients never send.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// OnStateChange implements sim.Listener.
func (h *Hub) OnStateChange(snap sim.Snapshot) {
	h.broadcast(event{Type: "state", State: snap})
}

// OnPassed implements sim.Listener.
func (h *Hub) OnPassed(snap sim.Snapshot) {
	h.broadcast(event{Type: "passed", State: snap})
}

func (h *Hub) broadcast(ev event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(ev); err != nil {
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		_ = conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}
