package store

import (
	"sync"

	"busticket/internal/domain/models"
)

type journeyEntry struct {
	mu      sync.Mutex
	journey models.Journey
	seats   []models.Seat
	index   map[string]int
	holds   []models.SeatHold
}

func (e *journeyEntry) snapshot() models.Journey {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.journey
}

// JourneyTx is a view of one journey valid only inside WithJourney or
// WithJourneys. It must not be retained after the callback returns.
type JourneyTx struct {
	e *journeyEntry
}

func (tx *JourneyTx) Journey() models.Journey { return tx.e.journey }

// Seats returns a copy of the seat grid in row-major order.
func (tx *JourneyTx) Seats() []models.Seat {
	out := make([]models.Seat, len(tx.e.seats))
	copy(out, tx.e.seats)
	return out
}

func (tx *JourneyTx) Seat(label string) (models.Seat, bool) {
	i, ok := tx.e.index[label]
	if !ok {
		return models.Seat{}, false
	}
	return tx.e.seats[i], true
}

// UpdateSeat replaces the seat with the same label. It reports false for
// an unknown label.
func (tx *JourneyTx) UpdateSeat(seat models.Seat) bool {
	i, ok := tx.e.index[seat.Label]
	if !ok {
		return false
	}
	tx.e.seats[i] = seat
	return true
}

// DecrementAvailable lowers the cached counter, never below zero.
func (tx *JourneyTx) DecrementAvailable() {
	if tx.e.journey.AvailableSeats > 0 {
		tx.e.journey.AvailableSeats--
	}
}

func (tx *JourneyTx) Holds() []models.SeatHold {
	out := make([]models.SeatHold, len(tx.e.holds))
	copy(out, tx.e.holds)
	return out
}

func (tx *JourneyTx) AddHold(h models.SeatHold) {
	tx.e.holds = append(tx.e.holds, h)
}

// RemoveHolds drops every hold drop accepts and returns how many went.
func (tx *JourneyTx) RemoveHolds(drop func(models.SeatHold) bool) int {
	kept := tx.e.holds[:0]
	removed := 0
	for _, h := range tx.e.holds {
		if drop(h) {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	for i := len(kept); i < len(tx.e.holds); i++ {
		tx.e.holds[i] = models.SeatHold{}
	}
	tx.e.holds = kept
	return removed
}
