package services

import (
	"context"
	"sort"
	"time"

	"busticket/internal/clock"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/store"
	"busticket/internal/utils"
)

// SeatService owns seat state and the advisory hold layer. Holds expire by
// time alone: a hold stops blocking as soon as now passes ExpiresAt, whether
// or not the sweeper has removed it yet.
type SeatService struct {
	Store   *store.Store
	Clock   clock.Clock
	HoldTTL time.Duration
}

func (s SeatService) now() time.Time {
	return clock.OrReal(s.Clock).Now()
}

func (s SeatService) ttl() time.Duration {
	if s.HoldTTL > 0 {
		return s.HoldTTL
	}
	return domain.DefaultHoldTTL
}

func (s SeatService) Seats(journeyID int64) ([]models.Seat, error) {
	var out []models.Seat
	err := s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		out = tx.Seats()
		return nil
	})
	return out, err
}

// AvailableSeats lists unbooked seats in row-major order.
func (s SeatService) AvailableSeats(journeyID int64) ([]models.Seat, error) {
	return s.filterSeats(journeyID, func(seat models.Seat) bool { return !seat.Booked })
}

func (s SeatService) BookedSeats(journeyID int64) ([]models.Seat, error) {
	return s.filterSeats(journeyID, func(seat models.Seat) bool { return seat.Booked })
}

func (s SeatService) filterSeats(journeyID int64, keep func(models.Seat) bool) ([]models.Seat, error) {
	seats, err := s.Seats(journeyID)
	if err != nil {
		return nil, err
	}
	out := seats[:0]
	for _, seat := range seats {
		if keep(seat) {
			out = append(out, seat)
		}
	}
	return out, nil
}

// IsSeatAvailable is false for unknown journeys or seats.
func (s SeatService) IsSeatAvailable(journeyID int64, label string) bool {
	free := false
	_ = s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		seat, ok := tx.Seat(label)
		free = ok && !seat.Booked
		return nil
	})
	return free
}

// AddHold places a hold when the seat is free and not actively held.
func (s SeatService) AddHold(journeyID int64, label string) bool {
	added := false
	now := s.now()
	_ = s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		added = s.holdLocked(tx, label, now)
		return nil
	})
	return added
}

func (s SeatService) holdLocked(tx *store.JourneyTx, label string, now time.Time) bool {
	seat, ok := tx.Seat(label)
	if !ok || seat.Booked || heldLocked(tx, label, now) {
		return false
	}
	tx.AddHold(models.SeatHold{
		JourneyID: tx.Journey().ID,
		SeatLabel: label,
		HeldAt:    now,
		ExpiresAt: now.Add(s.ttl()),
	})
	return true
}

func heldLocked(tx *store.JourneyTx, label string, now time.Time) bool {
	for _, h := range tx.Holds() {
		if h.SeatLabel == label && h.Active(now) {
			return true
		}
	}
	return false
}

func (s SeatService) IsSeatOnHold(journeyID int64, label string) bool {
	held := false
	now := s.now()
	_ = s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		held = heldLocked(tx, label, now)
		return nil
	})
	return held
}

// ActiveHolds returns holds that are still blocking.
func (s SeatService) ActiveHolds(journeyID int64) []models.SeatHold {
	var out []models.SeatHold
	now := s.now()
	_ = s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		for _, h := range tx.Holds() {
			if h.Active(now) {
				out = append(out, h)
			}
		}
		return nil
	})
	return out
}

// AvailableSeatsExcludingHolds lists seats that are neither booked nor
// actively held.
func (s SeatService) AvailableSeatsExcludingHolds(journeyID int64) ([]models.Seat, error) {
	var out []models.Seat
	now := s.now()
	err := s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		out = freeUnheldLocked(tx, now)
		return nil
	})
	return out, err
}

func freeUnheldLocked(tx *store.JourneyTx, now time.Time) []models.Seat {
	held := map[string]bool{}
	for _, h := range tx.Holds() {
		if h.Active(now) {
			held[h.SeatLabel] = true
		}
	}
	var out []models.Seat
	for _, seat := range tx.Seats() {
		if !seat.Booked && !held[seat.Label] {
			out = append(out, seat)
		}
	}
	return out
}

// HoldFreeSeats atomically collects the free unheld seats of a journey and,
// when hold is set, holds every one of them. It fails when fewer than
// minimum seats qualify. The returned expiry is zero when nothing was held.
func (s SeatService) HoldFreeSeats(journeyID int64, minimum int, hold bool) ([]string, time.Time, bool) {
	var (
		labels []string
		expiry time.Time
		ok     bool
	)
	now := s.now()
	_ = s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		free := freeUnheldLocked(tx, now)
		if len(free) < minimum {
			return nil
		}
		ok = true
		for _, seat := range free {
			if !hold {
				labels = append(labels, seat.Label)
				continue
			}
			if s.holdLocked(tx, seat.Label, now) {
				labels = append(labels, seat.Label)
			}
		}
		if hold && len(labels) > 0 {
			expiry = now.Add(s.ttl())
		}
		return nil
	})
	return labels, expiry, ok
}

// ReleaseHold drops any hold on the seat. It reports whether one existed.
func (s SeatService) ReleaseHold(journeyID int64, label string) bool {
	removed := 0
	_ = s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		removed = tx.RemoveHolds(func(h models.SeatHold) bool { return h.SeatLabel == label })
		return nil
	})
	return removed > 0
}

// SweepExpiredHolds purges expired holds on every journey and returns how
// many were removed.
func (s SeatService) SweepExpiredHolds() int {
	now := s.now()
	total := 0
	for _, id := range s.Store.JourneyIDs() {
		_ = s.Store.WithJourney(id, func(tx *store.JourneyTx) error {
			total += tx.RemoveHolds(func(h models.SeatHold) bool { return !h.Active(now) })
			return nil
		})
	}
	return total
}

// RunHoldSweeper sweeps on every tick until ctx is cancelled.
func (s SeatService) RunHoldSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := clock.OrReal(s.Clock).NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.SweepExpiredHolds(); n > 0 {
				utils.LogEventf("", "holds", "sweep", "removed=%d", n)
			}
		}
	}
}

// AssignAdjacentSeats prefers count consecutive free seats in one row,
// scanning rows front to back. Without such a run it falls back to the
// first count free seats. Fewer than count seats come back only when the
// journey has fewer free seats in total.
func (s SeatService) AssignAdjacentSeats(journeyID int64, count int) []models.Seat {
	if count <= 0 {
		return nil
	}
	free, err := s.AvailableSeats(journeyID)
	if err != nil {
		return nil
	}
	if len(free) <= count {
		sort.SliceStable(free, func(i, j int) bool { return models.SeatLess(free[i], free[j]) })
		return free
	}
	return pickAdjacent(free, count)
}

func pickAdjacent(free []models.Seat, count int) []models.Seat {
	sort.SliceStable(free, func(i, j int) bool { return models.SeatLess(free[i], free[j]) })

	for i := 0; i+count <= len(free); i++ {
		run := []models.Seat{free[i]}
		for j := i + 1; j < len(free) && len(run) < count; j++ {
			prev := run[len(run)-1]
			if free[j].Row != prev.Row || !nextColumn(prev, free[j]) {
				break
			}
			run = append(run, free[j])
		}
		if len(run) == count {
			return run
		}
	}
	out := make([]models.Seat, count)
	copy(out, free[:count])
	return out
}

// nextColumn reports whether b sits directly right of a.
func nextColumn(a, b models.Seat) bool {
	return len(a.Column) == 1 && len(b.Column) == 1 && b.Column[0] == a.Column[0]+1
}

// SeatMap reports every seat as FREE, HELD or BOOKED.
func (s SeatService) SeatMap(journeyID int64) ([]models.SeatState, error) {
	var out []models.SeatState
	now := s.now()
	err := s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		held := map[string]bool{}
		for _, h := range tx.Holds() {
			if h.Active(now) {
				held[h.SeatLabel] = true
			}
		}
		for _, seat := range tx.Seats() {
			state := models.SeatFree
			switch {
			case seat.Booked:
				state = models.SeatBooked
			case held[seat.Label]:
				state = models.SeatHeld
			}
			out = append(out, models.SeatState{Label: seat.Label, Row: seat.Row, Column: seat.Column, State: state})
		}
		return nil
	})
	return out, err
}
