package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chef4u/backend/internal/service"
)

// respondError maps the gateway error taxonomy onto HTTP statuses. The
// ladder matters: not-found and configuration outcomes are checked before
// the generic provider and schema failures.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMissingCredential):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		var provErr *service.ProviderError
		var schemaErr *service.SchemaViolationError
		if errors.As(err, &provErr) || errors.As(err, &schemaErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
