package handlers

import (
	"time"

	"busticket/internal/services"
	"busticket/internal/store"
)

// API bundles the services the handlers call. It is built once in main and
// shared by every request.
type API struct {
	Store        *store.Store
	Availability services.AvailabilityService
	Reservations services.ReservationService
	Seats        services.SeatService
	Fares        services.FareService
	Journeys     services.JourneyService
	Version      string
	StartedAt    time.Time
}

func (a *API) reports() services.ReportsService {
	return services.ReportsService{Journeys: a.Journeys, Reservations: a.Reservations}
}

func (a *API) docs(requestID string) services.DocsService {
	return services.DocsService{
		Reservations: a.Reservations,
		Journeys:     a.Journeys,
		Buses:        a.Store,
		RequestID:    requestID,
	}
}
