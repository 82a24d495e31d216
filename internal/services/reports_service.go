package services

import (
	"time"

	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/utils"
)

type OccupancyFilter struct {
	Date  string
	BusID int64
}

// JourneyOccupancy summarises the confirmed bookings of one journey.
type JourneyOccupancy struct {
	JourneyID      int64   `json:"journey_id"`
	JourneyNumber  string  `json:"journey_number"`
	BusID          int64   `json:"bus_id"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	TotalSeats     int     `json:"total_seats"`
	BookedSeats    int     `json:"booked_seats"`
	AvailableSeats int     `json:"available_seats"`
	LoadFactor     float64 `json:"load_factor"`
	Revenue        int64   `json:"revenue"`
}

type ReportsService struct {
	Journeys     JourneyService
	Reservations ReservationService
}

// GetOccupancyReport returns one row per journey on the date, optionally
// limited to a bus.
func (s ReportsService) GetOccupancyReport(f OccupancyFilter) ([]JourneyOccupancy, error) {
	if _, err := utils.ParseDate(f.Date, time.UTC); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	journeys := s.Journeys.ByDate(f.Date)
	out := make([]JourneyOccupancy, 0, len(journeys))
	for _, j := range journeys {
		if f.BusID > 0 && j.BusID != f.BusID {
			continue
		}
		row := JourneyOccupancy{
			JourneyID:      j.ID,
			JourneyNumber:  j.JourneyNumber,
			BusID:          j.BusID,
			Origin:         j.FromStop,
			Destination:    j.ToStop,
			TotalSeats:     j.TotalSeats,
			AvailableSeats: j.AvailableSeats,
		}
		for _, b := range s.Reservations.BookingsByJourney(j.ID) {
			if b.Status != domain.BookingConfirmed {
				continue
			}
			row.BookedSeats++
			row.Revenue += b.Fare
		}
		if j.TotalSeats > 0 {
			row.LoadFactor = float64(row.BookedSeats) / float64(j.TotalSeats)
		}
		out = append(out, row)
	}
	return out, nil
}

// Manifest lists the bookings of a journey in booking order.
func (s ReportsService) Manifest(journeyID int64) ([]models.Booking, error) {
	if _, ok := s.Journeys.Get(journeyID); !ok {
		return nil, domain.NotFoundError{Resource: "journey"}
	}
	return s.Reservations.BookingsByJourney(journeyID), nil
}
