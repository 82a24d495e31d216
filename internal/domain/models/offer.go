package models

import "time"

// Offer is a priced candidate journey for a passenger count.
type Offer struct {
	JourneyID          int64     `json:"journey_id"`
	BusID              int64     `json:"bus_id"`
	JourneyNumber      string    `json:"journey_number"`
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	Direction          string    `json:"direction"`
	TotalSeats         int       `json:"total_seats"`
	AvailableSeats     int       `json:"available_seats"`
	FarePerPassenger   int64     `json:"fare_per_passenger"`
	TotalFare          int64     `json:"total_fare"`
	AvailableSeatsList []string  `json:"available_seats_list"`
	// HoldExpiresAt is epoch millis, 0 when no seats were held.
	HoldExpiresAt int64  `json:"hold_expires_at,omitempty"`
	OfferToken    string `json:"offer_token,omitempty"`
}
