// internal/handlers/search/search_handler.go
package search

import (
	"net/http"
	"strconv"

	"motomarket-service/internal/pkg/response"
	"motomarket-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	catalog *catalog.Service
}

func NewSearchHandler(catalogService *catalog.Service) *SearchHandler {
	return &SearchHandler{catalog: catalogService}
}

// List serves the public catalog: active listings only, filtered,
// paginated. A page past the end comes back as page 1, the way the
// storefront resets after a narrowing filter change.
func (h *SearchHandler) List(c *gin.Context) {
	var filters catalog.FilterSet
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	query := c.Query("q")

	result := h.catalog.Search(query, filters, page, true)
	response.Success(c, http.StatusOK, "listings retrieved", result)
}

// Get serves one listing's detail view.
func (h *SearchHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "listing ID is required", nil)
		return
	}

	l, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "listing not found")
		return
	}

	response.Success(c, http.StatusOK, "listing retrieved", l)
}

// Refresh reloads the catalog mirror from the backend. The client's retry
// button lands here after a failed load.
func (h *SearchHandler) Refresh(c *gin.Context) {
	if err := h.catalog.Refresh(c.Request.Context()); err != nil {
		response.Error(c, http.StatusBadGateway, "failed to refresh listings", err)
		return
	}
	response.Success(c, http.StatusOK, "listings refreshed", nil)
}
