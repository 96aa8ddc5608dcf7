// Package socket keeps the open websocket connections that receive alert updates.
package socket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// Hub tracks connected clients by connection id.
type Hub struct {
	// mu also serializes writes, since a websocket.Conn allows one writer at a time.
	mu      sync.Mutex
	clients map[string]*websocket.Conn
	logger  *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		logger:  logger,
	}
}

// Register adds a connection under id.
func (h *Hub) Register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = conn
	h.logger.Debug("websocket client registered", zap.String("client_id", id))
}

// Unregister removes the connection stored under id.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		h.logger.Debug("websocket client unregistered", zap.String("client_id", id))
	}
}

// Len reports how many clients are connected.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Send writes a message to one client. A client that is gone is not an error.
func (h *Hub) Send(id string, message []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn, ok := h.clients[id]
	if !ok {
		return nil
	}
	return write(conn, message)
}

// Broadcast writes a message to every client, dropping the ones that fail.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		if err := write(conn, message); err != nil {
			h.logger.Warn("dropping websocket client", zap.String("client_id", id), zap.Error(err))
			_ = conn.Close()
			delete(h.clients, id)
		}
	}
}

func write(conn *websocket.Conn, message []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}
