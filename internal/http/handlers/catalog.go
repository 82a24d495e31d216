package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/stops
func (a *API) ListStops(c *gin.Context) {
	respondOK(c, "", a.Fares.ListStops())
}

// GET /api/v1/fares?from=&to=
// Without both parameters the whole fare table is returned.
func (a *API) GetFares(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" && to == "" {
		respondOK(c, "", a.Fares.ListFares())
		return
	}
	if from == "" || to == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "both from and to are required")
		return
	}
	quote, ok := a.Fares.CalculateFare(from, to)
	if !ok {
		respondError(c, http.StatusNotFound, "FARE_NOT_FOUND", "no fare between "+from+" and "+to)
		return
	}
	respondOK(c, "", quote)
}
