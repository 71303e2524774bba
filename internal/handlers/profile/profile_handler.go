// internal/handlers/profile/profile_handler.go
package profile

import (
	"net/http"

	"motomarket-service/internal/domain/profile"
	"motomarket-service/internal/middleware"
	"motomarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles profile.Repository
}

func NewProfileHandler(profiles profile.Repository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns one seller profile by id for the listing detail view.
func (h *ProfileHandler) Get(c *gin.Context) {
	prof, err := h.profiles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", prof)
}

// Me returns the authenticated user's seller profile.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	prof, err := h.profiles.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", prof)
}
