// internal/handlers/ws/ws_handler.go
package ws

import (
	"net/http"

	"motomarket-service/internal/pkg/response"
	wsfeed "motomarket-service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub    *wsfeed.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *wsfeed.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// HandleConnection upgrades the request and attaches the client to the
// moderation event feed. Routed behind Auth(), so only logged-in users
// get the feed.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err), zap.String("ip", c.ClientIP()))
		response.Error(c, http.StatusBadRequest, "failed to upgrade connection", err)
		return
	}

	client := wsfeed.NewClient(h.hub, conn, h.logger)
	client.Start()
}

// Stats reports how many clients the feed currently serves.
func (h *WSHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, "feed stats", gin.H{
		"connected_clients": h.hub.TotalClients(),
	})
}
