// internal/handlers/session/session_handler.go
package session

import (
	"net/http"

	"motomarket-service/internal/middleware"
	"motomarket-service/internal/pkg/guard"
	"motomarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	guards *guard.Factory
}

func NewSessionHandler(guards *guard.Factory) *SessionHandler {
	return &SessionHandler{guards: guards}
}

type reloadCheckRequest struct {
	View string `json:"view" binding:"required"`
}

// ReloadCheck answers whether the client may refresh itself after a tab
// refocus. The verdict carries a denial reason for diagnostics.
func (h *SessionHandler) ReloadCheck(c *gin.Context) {
	sessionID := middleware.MustGetSessionID(c)

	var req reloadCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	verdict := h.guards.ReloadPolicyForSession(sessionID).Check(c.Request.Context(), req.View)
	response.Success(c, http.StatusOK, "reload check evaluated", verdict)
}

// ReloadReset clears the once-per-session reload bookkeeping. Called when
// the client shell mounts fresh.
func (h *SessionHandler) ReloadReset(c *gin.Context) {
	sessionID := middleware.MustGetSessionID(c)

	h.guards.ReloadPolicyForSession(sessionID).Reset(c.Request.Context())
	response.Success(c, http.StatusOK, "reload state cleared", nil)
}
