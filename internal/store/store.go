// Package store keeps the seat inventory in memory. Reference data (stops,
// fares, buses) sits behind one RWMutex; every journey carries its own
// mutex so bookings on different journeys never contend.
//
// Lock order: the catalog lock is never held while a journey lock is taken,
// and journey locks are always taken in increasing journey ID order.
package store

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"busticket/internal/domain"
	"busticket/internal/domain/models"
)

type Store struct {
	mu       sync.RWMutex
	stops    map[int64]models.Stop
	fares    map[int64]models.Fare
	buses    map[int64]models.Bus
	journeys map[int64]*journeyEntry

	nextStopID    int64
	nextFareID    int64
	nextBusID     int64
	nextJourneyID int64
	nextSeatID    int64

	bookingsMu    sync.RWMutex
	bookings      map[int64]models.Booking
	nextBookingID int64

	reservations atomic.Int64
}

func New() *Store {
	return &Store{
		stops:    map[int64]models.Stop{},
		fares:    map[int64]models.Fare{},
		buses:    map[int64]models.Bus{},
		journeys: map[int64]*journeyEntry{},
		bookings: map[int64]models.Booking{},
	}
}

func (s *Store) AddStop(code, name string, ordinal int) models.Stop {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStopID++
	st := models.Stop{ID: s.nextStopID, Code: code, Name: name, Ordinal: ordinal}
	s.stops[st.ID] = st
	return st
}

// Stops returns all stops in corridor order.
func (s *Store) Stops() []models.Stop {
	s.mu.RLock()
	out := make([]models.Stop, 0, len(s.stops))
	for _, st := range s.stops {
		out = append(out, st)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Ordinal < out[j].Ordinal })
	return out
}

func (s *Store) StopByID(id int64) (models.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stops[id]
	return st, ok
}

// StopByCode matches codes case-insensitively.
func (s *Store) StopByCode(code string) (models.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.stops {
		if strings.EqualFold(st.Code, code) {
			return st, true
		}
	}
	return models.Stop{}, false
}

// Corridor builds the ordinal table from the stops currently loaded.
func (s *Store) Corridor() domain.Corridor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ords := make(map[string]int, len(s.stops))
	for _, st := range s.stops {
		ords[st.Code] = st.Ordinal
	}
	return domain.NewCorridor(ords)
}

// PutFare inserts the fare for the pair or overwrites the existing one,
// whichever direction it was stored in.
func (s *Store) PutFare(fromStopID, toStopID, price int64, at time.Time) models.Fare {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.fares {
		if f.Connects(fromStopID, toStopID) {
			f.Price = price
			f.LastUpdated = at
			s.fares[id] = f
			return f
		}
	}
	s.nextFareID++
	f := models.Fare{ID: s.nextFareID, FromStopID: fromStopID, ToStopID: toStopID, Price: price, LastUpdated: at}
	s.fares[f.ID] = f
	return f
}

func (s *Store) FareBetween(a, b int64) (models.Fare, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.fares {
		if f.Connects(a, b) {
			return f, true
		}
	}
	return models.Fare{}, false
}

func (s *Store) Fares() []models.Fare {
	s.mu.RLock()
	out := make([]models.Fare, 0, len(s.fares))
	for _, f := range s.fares {
		out = append(out, f)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) AddBus(code string, capacity int) models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBusID++
	b := models.Bus{ID: s.nextBusID, Code: code, Capacity: capacity}
	s.buses[b.ID] = b
	return b
}

func (s *Store) Bus(id int64) (models.Bus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buses[id]
	return b, ok
}

func (s *Store) Buses() []models.Bus {
	s.mu.RLock()
	out := make([]models.Bus, 0, len(s.buses))
	for _, b := range s.buses {
		out = append(out, b)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddJourney assigns an ID, sets AvailableSeats to TotalSeats and creates
// the seat grid.
func (s *Store) AddJourney(j models.Journey) models.Journey {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJourneyID++
	j.ID = s.nextJourneyID
	j.AvailableSeats = j.TotalSeats

	e := &journeyEntry{
		journey: j,
		seats:   make([]models.Seat, 0, j.TotalSeats),
		index:   make(map[string]int, j.TotalSeats),
	}
	for i := 1; i <= j.TotalSeats; i++ {
		row, col, label := models.SeatPosition(i)
		s.nextSeatID++
		e.index[label] = len(e.seats)
		e.seats = append(e.seats, models.Seat{
			ID:        s.nextSeatID,
			JourneyID: j.ID,
			Label:     label,
			Row:       row,
			Column:    col,
		})
	}
	s.journeys[j.ID] = e
	return j
}

func (s *Store) entry(id int64) (*journeyEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.journeys[id]
	return e, ok
}

func (s *Store) entries() []*journeyEntry {
	s.mu.RLock()
	out := make([]*journeyEntry, 0, len(s.journeys))
	for _, e := range s.journeys {
		out = append(out, e)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].journey.ID < out[j].journey.ID })
	return out
}

// Journey returns a snapshot of the journey.
func (s *Store) Journey(id int64) (models.Journey, bool) {
	e, ok := s.entry(id)
	if !ok {
		return models.Journey{}, false
	}
	return e.snapshot(), true
}

// Journeys returns snapshots of the journeys accepted by match, ordered by
// ID. A nil match returns everything.
func (s *Store) Journeys(match func(models.Journey) bool) []models.Journey {
	var out []models.Journey
	for _, e := range s.entries() {
		j := e.snapshot()
		if match == nil || match(j) {
			out = append(out, j)
		}
	}
	return out
}

// WithJourney runs fn while holding the journey's lock.
func (s *Store) WithJourney(id int64, fn func(tx *JourneyTx) error) error {
	e, ok := s.entry(id)
	if !ok {
		return domain.NotFoundError{Resource: "journey"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&JourneyTx{e: e})
}

// WithJourneys locks every listed journey in increasing ID order and runs fn
// over a consistent view of all of them. Unknown IDs fail with NotFound.
func (s *Store) WithJourneys(ids []int64, fn func(txs map[int64]*JourneyTx) error) error {
	uniq := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })

	entries := make([]*journeyEntry, 0, len(uniq))
	for _, id := range uniq {
		e, ok := s.entry(id)
		if !ok {
			return domain.NotFoundError{Resource: "journey"}
		}
		entries = append(entries, e)
	}

	txs := make(map[int64]*JourneyTx, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		defer e.mu.Unlock()
		txs[e.journey.ID] = &JourneyTx{e: e}
	}
	return fn(txs)
}

// JourneyIDs lists every journey ID in ascending order.
func (s *Store) JourneyIDs() []int64 {
	s.mu.RLock()
	out := make([]int64, 0, len(s.journeys))
	for id := range s.journeys {
		out = append(out, id)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
