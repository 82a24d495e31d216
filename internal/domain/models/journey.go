package models

import "time"

// Journey is one scheduled run of a bus over a segment on a date.
// Everything except AvailableSeats is fixed once the journey is created.
type Journey struct {
	ID             int64     `json:"journey_id"`
	BusID          int64     `json:"bus_id"`
	JourneyNumber  string    `json:"journey_number"`
	JourneyDate    string    `json:"journey_date"`
	DepartureTime  time.Time `json:"departure_time"`
	FromStop       string    `json:"origin"`
	ToStop         string    `json:"destination"`
	Direction      string    `json:"direction"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
}

// ServesRoute is an exact match on origin and destination.
func (j Journey) ServesRoute(from, to string) bool {
	return j.FromStop == from && j.ToStop == to
}
