package api

import (
	"log"
	stdhttp "net/http"

	intconfig "busticket/internal/config"
	h "busticket/internal/http/handlers"
	"busticket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, a *h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"status":  "ERROR",
			"code":    stdhttp.StatusNotFound,
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.GET("/health", a.Health)
	r.GET("/info", a.Info)
	r.GET("/api/routes", h.Routes)

	v1 := r.Group("/api/v1")
	{
		reservation := v1.Group("/reservation")
		reservation.GET("/availability", a.CheckAvailability)
		reservation.POST("/availability", a.CheckAvailability)
		reservation.POST("/book", a.BookReservation)

		journeys := reservation.Group("/journeys/:id")
		journeys.GET("/offer", a.GetOffer)
		journeys.GET("/seats", a.GetSeatMap)
		journeys.GET("/assign", a.PreviewSeatAssignment)
		journeys.GET("/bookings", a.GetJourneyManifest)

		bookings := reservation.Group("/bookings/:number")
		bookings.GET("", a.GetBooking)
		bookings.GET("/e-ticket", a.GetETicketPDF)

		v1.GET("/stops", a.ListStops)
		v1.GET("/fares", a.GetFares)
		v1.GET("/reports/occupancy", a.GetOccupancyReport)
	}

	h.SetRouter(r)
	return r
}
