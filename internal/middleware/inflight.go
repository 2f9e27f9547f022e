package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// InFlightGuard rejects a request while an identical one from the same
// client is still running. Each screen control triggers at most one
// generation call at a time; a duplicate that slips past the disabled
// control gets a 409 until the first call settles.
type InFlightGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

// NewInFlightGuard creates an empty guard.
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{active: make(map[string]bool)}
}

// Middleware returns the Gin middleware enforcing the guard. The key is the
// client address plus the route, so separate controls stay independent.
func (g *InFlightGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + " " + c.Request.Method + " " + c.FullPath()

		g.mu.Lock()
		if g.active[key] {
			g.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"error": "a previous request for this action is still in progress"})
			c.Abort()
			return
		}
		g.active[key] = true
		g.mu.Unlock()

		defer func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		}()

		c.Next()
	}
}
