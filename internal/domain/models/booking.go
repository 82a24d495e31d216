package models

import (
	"time"

	"busticket/internal/domain"
)

// Booking is the immutable record of one passenger on one seat.
type Booking struct {
	ID             int64         `json:"id"`
	BookingNumber  string        `json:"booking_number"`
	JourneyID      int64         `json:"journey_id"`
	PassengerName  string        `json:"passenger_name"`
	PassengerPhone string        `json:"passenger_phone"`
	PassengerEmail string        `json:"passenger_email,omitempty"`
	FromStop       string        `json:"from_stop"`
	ToStop         string        `json:"to_stop"`
	SeatLabel      string        `json:"seat_number"`
	Fare           int64         `json:"fare"`
	Status         domain.Status `json:"status"`
	BookingTime    time.Time     `json:"booking_time"`
	TravelDate     time.Time     `json:"travel_date"`
}

// Passenger carries per-seat passenger info.
type Passenger struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
