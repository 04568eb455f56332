package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"riskwatch/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgAlert MessageType = "alert"
)

// ErrHubClosed is returned by Deliver after Close
var ErrHubClosed = errors.New("alert hub closed")

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans alerts out to connected counselors
type Hub struct {
	conns map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// Connection represents a WebSocket connection
type Connection struct {
	UserID string
	Role   model.Role
	Send   chan []byte
	Hub    *Hub
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("[WS] %s %s connected", conn.Role, conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				log.Printf("[WS] %s %s disconnected", conn.Role, conn.UserID)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// ConnectionCount returns the number of live connections
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every client and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Name implements alert.Sink
func (h *Hub) Name() string { return "websocket" }

// Deliver implements alert.Sink by pushing the alert to every counselor
func (h *Hub) Deliver(ctx context.Context, a model.Alert) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	data, err := json.Marshal(&Message{Type: MsgAlert, Payload: payload})
	if err != nil {
		return err
	}

	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
