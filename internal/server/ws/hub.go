// Package ws pushes game state to websocket subscribers, one room per game.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	TypeState        = "state"
	TypePing         = "ping"
	TypeRequestState = "request_state"

	sendBuffer = 16
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StateFunc renders the current state of a room for a (re)connecting client.
type StateFunc func() (any, error)

type roomMessage struct {
	room string
	data []byte
}

type Hub struct {
	mu        sync.Mutex
	rooms     map[string]map[*Client]struct{}
	broadcast chan roomMessage
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

type Client struct {
	hub  *Hub
	room string
	send chan []byte
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms:     make(map[string]map[*Client]struct{}),
		broadcast: make(chan roomMessage, 64),
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:       log,
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[msg.room] {
				client.sendRaw(msg.data)
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues a message for every client of room. It never blocks the
// caller; when the queue is full the message is dropped and logged.
func (h *Hub) Publish(room, typ string, payload any) {
	data, err := json.Marshal(Message{Type: typ, Payload: mustMarshal(payload)})
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("marshal ws message")
		return
	}
	select {
	case h.broadcast <- roomMessage{room: room, data: data}:
	default:
		h.log.Warn().Str("room", room).Msg("ws broadcast queue full")
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	clients, ok := h.rooms[c.room]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[c.room] = clients
	}
	clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[c.room]; ok {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.rooms, c.room)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Clients(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// Serve upgrades the request and keeps the client subscribed to room until
// the connection drops. The current state is sent right away and again on
// every request_state message.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, room string, state StateFunc) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("ws upgrade failed")
		return
	}
	client := &Client{hub: h, room: room, send: make(chan []byte, sendBuffer)}
	h.Register(client)
	h.log.Debug().Str("room", room).Msg("ws client joined")
	client.sendState(state)

	go func() {
		defer conn.Close()
		if err := writeWithHeartbeat(conn, client.send, pingInterval); err != nil {
			h.log.Debug().Err(err).Str("room", room).Msg("ws write stopped")
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.Unregister(client)
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == TypeRequestState {
			client.sendState(state)
		}
	}
}

func (c *Client) sendState(state StateFunc) {
	if state == nil {
		return
	}
	payload, err := state()
	if err != nil {
		c.hub.log.Warn().Err(err).Str("room", c.room).Msg("ws state unavailable")
		return
	}
	data, err := json.Marshal(Message{Type: TypeState, Payload: mustMarshal(payload)})
	if err != nil {
		return
	}
	c.hub.mu.Lock()
	c.sendRaw(data)
	c.hub.mu.Unlock()
}

// sendRaw must be called with hub.mu held so it cannot race Unregister.
func (c *Client) sendRaw(data []byte) {
	if _, ok := c.hub.rooms[c.room][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	if raw, ok := v.(json.RawMessage); ok {
		return raw
	}
	data, _ := json.Marshal(v)
	return data
}
