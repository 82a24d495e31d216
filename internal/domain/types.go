package domain

import "time"

// ID is used across domain entities.
type ID int64

// Status represents a lightweight state value.
type Status string

const (
	BookingConfirmed Status = "CONFIRMED"
	BookingCancelled Status = "CANCELLED"
	BookingCompleted Status = "COMPLETED"
)

const (
	// DateLayout is the wire and storage format of journey dates.
	DateLayout = "2006-01-02"

	// TransitTime is the fixed duration between departure and arrival.
	TransitTime = 150 * time.Minute

	// DefaultHoldTTL bounds how long a seat hold blocks other offers.
	DefaultHoldTTL = 10 * time.Minute

	// DefaultBookingHorizonDays counts today as the first bookable day.
	DefaultBookingHorizonDays = 3
)
