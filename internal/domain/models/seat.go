package models

import (
	"strconv"
	"time"
)

// SeatsPerRow is the coach layout width. Columns are labelled A to D.
const SeatsPerRow = 4

const seatColumns = "ABCD"

type Seat struct {
	ID             int64     `json:"id"`
	JourneyID      int64     `json:"journey_id"`
	Label          string    `json:"seat_number"`
	Row            int       `json:"row"`
	Column         string    `json:"column"`
	Booked         bool      `json:"is_booked"`
	PassengerName  string    `json:"passenger_name,omitempty"`
	PassengerPhone string    `json:"passenger_phone,omitempty"`
	BookedAt       time.Time `json:"booked_at,omitzero"`
}

// SeatPosition returns the row, column and label of the i-th seat of a
// journey, counting from 1 in row-major order: 1A, 1B, 1C, 1D, 2A...
func SeatPosition(i int) (row int, column, label string) {
	row = (i-1)/SeatsPerRow + 1
	column = string(seatColumns[(i-1)%SeatsPerRow])
	return row, column, strconv.Itoa(row) + column
}

// SeatLess orders seats by row then column.
func SeatLess(a, b Seat) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

// SeatHold blocks a free seat from other offers until ExpiresAt.
type SeatHold struct {
	JourneyID int64     `json:"journey_id"`
	SeatLabel string    `json:"seat_number"`
	HeldAt    time.Time `json:"held_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Active is evaluated lazily; an expired hold needs no cleanup to stop
// blocking.
func (h SeatHold) Active(now time.Time) bool {
	return h.ExpiresAt.After(now)
}

// SeatState is one cell of a seat map.
type SeatState struct {
	Label  string `json:"seat_number"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	State  string `json:"state"`
}

const (
	SeatFree   = "FREE"
	SeatHeld   = "HELD"
	SeatBooked = "BOOKED"
)
