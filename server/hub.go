package server

import (
	"encoding/json"
	"sync"
)

// Hub fans status frames out to the connected websocket clients. Slow
// clients drop frames instead of stalling the broadcast.
type Hub struct {
	mu              sync.Mutex
	clients         map[*Client]struct{}
	broadcastStatus chan statusResponse
}

// Client is one websocket subscriber. The connection handler owns the
// read loop; a writer goroutine drains send.
type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		clients:         make(map[*Client]struct{}),
		broadcastStatus: make(chan statusResponse, 32),
	}
}

// Run delivers queued broadcasts until done closes.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastStatus:
			h.mu.Lock()
			for client := range h.clients {
				client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(payload)})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a status frame without blocking the caller.
func (h *Hub) Broadcast(status statusResponse) {
	select {
	case h.broadcastStatus <- status:
	default:
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
