package handlers

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "UP",
		"journeys": len(a.Journeys.All()),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Bus Ticketer Service",
		"version":     a.Version,
		"description": "Bus seat inventory with availability checking and reservations",
		"go":          runtime.Version(),
		"started":     a.StartedAt.UTC().Format(time.RFC3339),
		"endpoints": gin.H{
			"health":       "/health",
			"availability": "/api/v1/reservation/availability",
			"reservations": "/api/v1/reservation/book",
		},
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "NOT_READY", "router is not ready")
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
