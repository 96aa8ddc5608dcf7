package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Longest silence tolerated from a client before the connection is dropped.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWs streams alert updates. Browsers cannot set headers on a websocket
// handshake, so the token travels in the query string.
func (h *Handler) serveWs(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		respondError(w, http.StatusUnauthorized, "token is required")
		return
	}
	user, err := h.parseToken(tokenString)
	if err != nil {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	clientID := uuid.NewString()
	h.hub.Register(clientID, conn)
	defer func() {
		h.hub.Unregister(clientID)
		_ = conn.Close()
	}()
	h.logger.Info("websocket connected", zap.String("client_id", clientID), zap.String("user_id", user.ID))

	if payload, err := json.Marshal(alertsMessage{Type: "alerts", Alerts: h.store.Alerts()}); err == nil {
		if err := h.hub.Send(clientID, payload); err != nil {
			h.logger.Warn("initial alert push failed", zap.String("client_id", clientID), zap.Error(err))
			return
		}
	}

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket closed unexpectedly", zap.String("client_id", clientID), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
