package server

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/teamly-app/teamly-server/internal/domains/dtos"
	"github.com/teamly-app/teamly-server/internal/domains/entities"
	"github.com/teamly-app/teamly-server/pkg/logging"
)

// hub tracks the live notification stream connections per user.
type hub struct {
	mu    sync.Mutex
	conns map[string][]*websocket.Conn
}

func newHub() *hub {
	return &hub{conns: map[string][]*websocket.Conn{}}
}

func (h *hub) add(userId string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[userId] = append(h.conns[userId], conn)
}

func (h *hub) remove(userId string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	remaining := h.conns[userId][:0]
	for _, c := range h.conns[userId] {
		if c != conn {
			remaining = append(remaining, c)
		}
	}
	if len(remaining) == 0 {
		delete(h.conns, userId)
	} else {
		h.conns[userId] = remaining
	}
}

// publish pushes a freshly created notification to the receiver's open
// connections. Best-effort: a dead connection is logged and skipped.
func (h *hub) publish(notification entities.Notification) {
	h.mu.Lock()
	conns := append([]*websocket.Conn(nil), h.conns[notification.ReceiverId]...)
	h.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(dtos.NotificationResponseFromEntity(notification)); err != nil {
			logging.Warn("failed to push notification",
				zap.String("receiver_id", notification.ReceiverId),
				zap.Error(err),
			)
		}
	}
}
