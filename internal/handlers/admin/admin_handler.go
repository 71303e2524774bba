// internal/handlers/admin/admin_handler.go
package admin

import (
	"net/http"

	domain "motomarket-service/internal/domain/listing"
	xerrors "motomarket-service/internal/pkg/errors"
	"motomarket-service/internal/pkg/response"
	"motomarket-service/internal/service/moderation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	moderation *moderation.Service
	logger     *zap.Logger
}

func NewAdminHandler(moderationService *moderation.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{moderation: moderationService, logger: logger}
}

// List serves the moderation table: every listing regardless of status,
// optionally narrowed by free text and status. The mirror is loaded on
// first use so a fresh console does not see an empty table.
func (h *AdminHandler) List(c *gin.Context) {
	if err := h.moderation.EnsureLoaded(c.Request.Context()); err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load listings", err)
		return
	}

	query := c.Query("q")
	status := c.DefaultQuery("status", "all")

	rows := h.moderation.Search(query, status)
	response.Success(c, http.StatusOK, "listings retrieved", rows)
}

// Reload refreshes the moderation mirror from the backend. Also the
// retry action after a failed load.
func (h *AdminHandler) Reload(c *gin.Context) {
	rows, err := h.moderation.LoadAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load listings", err)
		return
	}
	response.Success(c, http.StatusOK, "listings loaded", rows)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves one listing to a new moderation state. A busy row
// answers 409 so the console disables the second click instead of
// queueing it.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.moderation.UpdateStatus(c.Request.Context(), id, domain.Status(req.Status))
	if err != nil {
		h.writeModerationError(c, err, "failed to update listing status")
		return
	}

	response.Success(c, http.StatusOK, "listing status updated", updated)
}

// Delete removes a listing permanently. The irreversible action must be
// confirmed with ?confirm=true.
func (h *AdminHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	if err := h.moderation.Delete(c.Request.Context(), id, confirmed); err != nil {
		h.writeModerationError(c, err, "failed to delete listing")
		return
	}

	response.Success(c, http.StatusOK, "listing deleted", nil)
}

func (h *AdminHandler) writeModerationError(c *gin.Context, err error, fallback string) {
	switch {
	case xerrors.Is(err, xerrors.ErrRowBusy):
		response.Error(c, http.StatusConflict, "an update for this listing is already running", err)
	case xerrors.Is(err, xerrors.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "unknown listing status", err)
	case xerrors.Is(err, xerrors.ErrConfirmationRequired):
		response.Error(c, http.StatusBadRequest, "deletion must be confirmed with confirm=true", err)
	case xerrors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "listing not found")
	default:
		h.logger.Error("moderation action failed", zap.Error(err))
		response.Error(c, http.StatusBadGateway, fallback, err)
	}
}
