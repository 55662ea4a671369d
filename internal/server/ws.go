package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/handrunner/internal/app"
	"github.com/ayusman/handrunner/internal/game"
	"github.com/ayusman/handrunner/internal/input"
	"github.com/ayusman/handrunner/internal/score"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// BroadcastInterval is the state push cadence, roughly half the simulation
// rate. The browser interpolates between frames.
const BroadcastInterval = 33 * time.Millisecond

// stateMessage is one outbound frame on the game socket.
type stateMessage struct {
	Type         string        `json:"type"`
	Game         game.Snapshot `json:"game"`
	HoldProgress float64       `json:"holdProgress"`
	Gesture      bool          `json:"gesture"`
	Scores       []int         `json:"scores"`
	Best         int           `json:"best"`
	Timestamp    int64         `json:"timestamp"`
}

// inputMessage is one inbound frame: a raw touch edge or the fallback key.
type inputMessage struct {
	Type string `json:"type"` // "touchstart", "touchend" or "key"
}

// GameHandler runs the game WebSocket: it broadcasts render state to all
// connected clients and feeds their touch and key input into the machine.
type GameHandler struct {
	app     *app.App
	scores  *score.Recorder
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewGameHandler creates a GameHandler and starts its broadcast loop.
func NewGameHandler(a *app.App, scores *score.Recorder) *GameHandler {
	h := &GameHandler{
		app:     a,
		scores:  scores,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	h.readLoop(conn)
}

// readLoop drains one client's input. Touch state is per client: each
// connection gets its own decoder so one player's long press can't complete
// another's double tap.
func (h *GameHandler) readLoop(conn *websocket.Conn) {
	machine := h.app.Machine()
	touch := input.NewTouchDecoder(input.Config{
		OnTap:       func() { machine.Handle(game.CommandJump) },
		OnDoubleTap: func() { machine.Handle(game.CommandActivate) },
		OnLongPress: func() { machine.Handle(game.CommandActivate) },
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "touchstart":
			touch.Down(time.Now())
		case "touchend":
			touch.Up()
		case "key":
			machine.HandleKey()
		}
	}
}

// broadcast pushes the current render state to all connected clients.
func (h *GameHandler) broadcast() {
	ticker := time.NewTicker(BroadcastInterval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		msg, err := json.Marshal(h.stateMessage(time.Now()))
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}

// stateMessage assembles one outbound frame.
func (h *GameHandler) stateMessage(now time.Time) stateMessage {
	msg := stateMessage{
		Type:         "state",
		Game:         h.app.Machine().Snapshot(),
		HoldProgress: h.app.Translator().HoldProgress(now),
		Gesture:      h.app.GestureAvailable() && h.app.IsEnabled(),
		Scores:       []int{},
		Timestamp:    now.UnixMilli(),
	}
	if h.scores != nil {
		msg.Scores = h.scores.Top()
		msg.Best = h.scores.Best()
	}
	return msg
}
