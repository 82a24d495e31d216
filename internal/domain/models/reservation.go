package models

import (
	"time"

	"busticket/internal/domain"
)

// PaymentInfo is what the client claims to have paid for a group booking.
type PaymentInfo struct {
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

// GroupBookingRequest books several passengers on one journey at once.
type GroupBookingRequest struct {
	JourneyID      int64       `json:"journey_id"`
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	PassengerCount int         `json:"passenger_count"`
	ContactEmail   string      `json:"contact_email"`
	Passengers     []Passenger `json:"passengers"`
	Payment        PaymentInfo `json:"payment"`
	OfferToken     string      `json:"offer_token,omitempty"`
}

// Ticket is one passenger line of a reservation.
type Ticket struct {
	TicketNumber   string        `json:"ticket_number"`
	BookingNumber  string        `json:"booking_reference"`
	PassengerName  string        `json:"passenger_name"`
	PassengerPhone string        `json:"passenger_phone"`
	PassengerEmail string        `json:"passenger_email"`
	SeatNumber     string        `json:"seat_number"`
	Fare           int64         `json:"fare"`
	Status         domain.Status `json:"status"`
}

// Reservation groups the tickets issued by one group booking.
type Reservation struct {
	ReservationID  int64         `json:"reservation_id"`
	BookingNumber  string        `json:"booking_number"`
	TicketNumber   string        `json:"ticket_number"`
	Status         domain.Status `json:"status"`
	ContactEmail   string        `json:"contact_email"`
	Journey        Journey       `json:"journey"`
	ArrivalTime    time.Time     `json:"arrival_time"`
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	PassengerCount int           `json:"passenger_count"`
	TotalAmount    int64         `json:"total_amount"`
	PaymentMethod  string        `json:"payment_method"`
	Tickets        []Ticket      `json:"bookings"`
	CreatedAt      time.Time     `json:"created_at"`
}
