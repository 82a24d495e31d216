package handlers

import (
	"strconv"
	"strings"
	"time"

	"busticket/internal/services"

	"github.com/gin-gonic/gin"
)

// GetOccupancyReport handles occupancy per journey for a date, optionally
// filtered by bus.
func (a *API) GetOccupancyReport(c *gin.Context) {
	date := strings.TrimSpace(c.DefaultQuery("date", time.Now().Format(time.DateOnly)))
	busID, _ := strconv.ParseInt(c.Query("bus_id"), 10, 64)

	report, err := a.reports().GetOccupancyReport(services.OccupancyFilter{
		Date:  date,
		BusID: busID,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "", report)
}

// GET /api/v1/reservation/journeys/:id/bookings
func (a *API) GetJourneyManifest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	list, err := a.reports().Manifest(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "", list)
}
