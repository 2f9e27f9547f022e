package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/service"
)

// PriceHandler handles product price comparison searches.
type PriceHandler struct {
	catalog service.PriceCatalog
	source  string
}

// NewPriceHandler creates a new PriceHandler instance. Source names the
// configured catalog mode and is echoed in responses so clients can label
// estimates as such.
func NewPriceHandler(catalog service.PriceCatalog, source string) *PriceHandler {
	return &PriceHandler{catalog: catalog, source: source}
}

// Search handles GET /prices/search?q=...
func (h *PriceHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	product, err := h.catalog.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	cheapest, _ := product.Cheapest()
	c.JSON(http.StatusOK, gin.H{
		"product":  product,
		"cheapest": cheapest,
		"source":   h.source,
	})
}
