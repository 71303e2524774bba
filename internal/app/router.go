// internal/app/router.go
package app

import (
	adminHandler "motomarket-service/internal/handlers/admin"
	listingHandler "motomarket-service/internal/handlers/listing"
	profileHandler "motomarket-service/internal/handlers/profile"
	searchHandler "motomarket-service/internal/handlers/search"
	sessionHandler "motomarket-service/internal/handlers/session"
	wsHandler "motomarket-service/internal/handlers/ws"
	"motomarket-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Search         *searchHandler.SearchHandler
	Listing        *listingHandler.ListingHandler
	Admin          *adminHandler.AdminHandler
	Profile        *profileHandler.ProfileHandler
	Session        *sessionHandler.SessionHandler
	WS             *wsHandler.WSHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware.Auth(), h.WS.HandleConnection)

	// ==================== Public Catalog ====================
	listings := api.Group("/listings")
	{
		listings.GET("", h.Search.List)
		listings.GET("/:id", h.Search.Get)
		listings.POST("/refresh", h.Search.Refresh)
	}
	api.GET("/profiles/:id", h.Profile.Get)

	// ==================== Seller Routes ====================
	seller := api.Group("")
	seller.Use(h.AuthMiddleware.Auth())
	{
		seller.POST("/listings", h.Listing.Create)
		seller.PUT("/listings/:id", h.Listing.Update)
		seller.GET("/my/listings", h.Listing.MyListings)
		seller.GET("/profile/me", h.Profile.Me)

		// Reload suppression for the session
		seller.POST("/session/reload-check", h.Session.ReloadCheck)
		seller.POST("/session/reload-reset", h.Session.ReloadReset)
	}

	// ==================== Moderation Console ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		admin.GET("/listings", h.Admin.List)
		admin.POST("/listings/reload", h.Admin.Reload)
		admin.PUT("/listings/:id/status", h.Admin.UpdateStatus)
		admin.DELETE("/listings/:id", h.Admin.Delete)
		admin.GET("/ws/stats", h.WS.Stats)
	}
}
