package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/http/middleware"
	"busticket/internal/services"
	"busticket/internal/utils"

	"github.com/gin-gonic/gin"
)

type availabilityParams struct {
	Origin         string
	Destination    string
	PassengerCount string
	JourneyDate    string
}

func respondOK(c *gin.Context, message string, data any) {
	body := gin.H{
		"status":    "SUCCESS",
		"code":      http.StatusOK,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

// readAvailabilityParams accepts query strings, form posts and JSON bodies.
func readAvailabilityParams(c *gin.Context) (availabilityParams, bool) {
	if c.Request.Method == http.MethodPost && c.ContentType() == gin.MIMEJSON {
		var raw map[string]any
		if !BindJSONOrError(c, &raw) {
			return availabilityParams{}, false
		}
		str := func(k string) string {
			v, ok := raw[k]
			if !ok || v == nil {
				return ""
			}
			return strings.TrimSpace(fmt.Sprint(v))
		}
		return availabilityParams{
			Origin:         str("origin"),
			Destination:    str("destination"),
			PassengerCount: str("passenger_count"),
			JourneyDate:    str("journey_date"),
		}, true
	}
	get := func(k string) string {
		if v := strings.TrimSpace(c.PostForm(k)); v != "" {
			return v
		}
		return strings.TrimSpace(c.Query(k))
	}
	return availabilityParams{
		Origin:         get("origin"),
		Destination:    get("destination"),
		PassengerCount: get("passenger_count"),
		JourneyDate:    get("journey_date"),
	}, true
}

// GET|POST /api/v1/reservation/availability
func (a *API) CheckAvailability(c *gin.Context) {
	p, ok := readAvailabilityParams(c)
	if !ok {
		return
	}
	if p.Origin == "" || p.Destination == "" || p.PassengerCount == "" || p.JourneyDate == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing required parameters: origin, destination, passenger_count, journey_date")
		return
	}
	pax, err := strconv.Atoi(p.PassengerCount)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "passenger_count must be an integer")
		return
	}

	corridor := a.Store.Corridor()
	stops := strings.Join(corridor.Codes(), ", ")
	origin := utils.NormalizeStopCode(p.Origin)
	destination := utils.NormalizeStopCode(p.Destination)
	if !corridor.IsValidStop(origin) {
		respondError(c, http.StatusBadRequest, "INVALID_ORIGIN", "Origin must be one of: "+stops)
		return
	}
	if !corridor.IsValidStop(destination) {
		respondError(c, http.StatusBadRequest, "INVALID_DESTINATION", "Destination must be one of: "+stops)
		return
	}
	if origin == destination {
		respondError(c, http.StatusBadRequest, "INVALID_ROUTE", "Origin and destination must be different")
		return
	}
	if pax < 1 {
		respondError(c, http.StatusBadRequest, "INVALID_PASSENGER_COUNT", "Passenger count must be at least 1")
		return
	}

	offers := a.Availability.CheckAvailability(origin, destination, pax, p.JourneyDate)
	utils.LogEventf(middleware.GetRequestID(c), "availability", "check", "route=%s-%s pax=%d date=%s offers=%d", origin, destination, pax, p.JourneyDate, len(offers))
	if len(offers) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	total := 0
	for _, o := range offers {
		total += o.AvailableSeats
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "AVAILABLE",
		"code":   http.StatusOK,
		"data": gin.H{
			"journeys":              offers,
			"passenger_count":       pax,
			"available_seats_count": total,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// GET /api/v1/reservation/journeys/:id/offer
func (a *API) GetOffer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	pax, ok := positiveQuery(c, "passenger_count")
	if !ok {
		return
	}
	origin := utils.NormalizeStopCode(c.Query("origin"))
	destination := utils.NormalizeStopCode(c.Query("destination"))

	offer, ok := a.Availability.GetOfferByID(id, pax, origin, destination)
	if !ok {
		respondError(c, http.StatusNotFound, "OFFER_NOT_AVAILABLE", "No offer available for this journey")
		return
	}
	utils.LogEventf(middleware.GetRequestID(c), "availability", "offer", "journey_id=%d seats=%d", id, offer.AvailableSeats)
	respondOK(c, "", offer)
}

// GET /api/v1/reservation/journeys/:id/seats
func (a *API) GetSeatMap(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	seats, err := a.Seats.SeatMap(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "", gin.H{
		"journey_id": id,
		"seats":      seats,
		"holds":      a.Seats.ActiveHolds(id),
	})
}

// GET /api/v1/reservation/journeys/:id/assign?count=n
func (a *API) PreviewSeatAssignment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	count, ok := positiveQuery(c, "count")
	if !ok {
		return
	}
	if _, found := a.Journeys.Get(id); !found {
		RespondDomainError(c, domain.NotFoundError{Resource: "journey", Err: domain.DomainError{Code: "JOURNEY_NOT_FOUND"}})
		return
	}
	seats := a.Seats.AssignAdjacentSeats(id, count)
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.Label)
	}
	respondOK(c, "", gin.H{
		"journey_id": id,
		"requested":  count,
		"seats":      labels,
	})
}

// POST /api/v1/reservation/book
func (a *API) BookReservation(c *gin.Context) {
	var req models.GroupBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Origin = utils.NormalizeStopCode(req.Origin)
	req.Destination = utils.NormalizeStopCode(req.Destination)
	req.ContactEmail = utils.TrimOrEmpty(req.ContactEmail)

	reqID := middleware.GetRequestID(c)
	ctx := services.WithRequestID(c.Request.Context(), reqID)
	res, err := a.Reservations.BookGroup(ctx, req)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusNotFound, "JOURNEY_NOT_FOUND", "Journey not found")
			return
		}
		RespondDomainError(c, err)
		return
	}
	respondOK(c, "Reservation confirmed successfully", res)
}

// GET /api/v1/reservation/bookings/:number
func (a *API) GetBooking(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	b, ok := a.Reservations.GetBookingByNumber(number)
	if !ok {
		respondError(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		return
	}
	respondOK(c, "", b)
}

// GET /api/v1/reservation/bookings/:number/e-ticket
func (a *API) GetETicketPDF(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	pdfBytes, filename, err := a.docs(middleware.GetRequestID(c)).GenerateETicket(number)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
