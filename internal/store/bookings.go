package store

import (
	"sort"

	"busticket/internal/domain/models"
)

// AddBooking assigns an ID and stores the booking.
func (s *Store) AddBooking(b models.Booking) models.Booking {
	s.bookingsMu.Lock()
	defer s.bookingsMu.Unlock()
	s.nextBookingID++
	b.ID = s.nextBookingID
	s.bookings[b.ID] = b
	return b
}

func (s *Store) Booking(id int64) (models.Booking, bool) {
	s.bookingsMu.RLock()
	defer s.bookingsMu.RUnlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *Store) BookingByNumber(number string) (models.Booking, bool) {
	s.bookingsMu.RLock()
	defer s.bookingsMu.RUnlock()
	for _, b := range s.bookings {
		if b.BookingNumber == number {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Bookings returns the bookings accepted by match ordered by ID.
func (s *Store) Bookings(match func(models.Booking) bool) []models.Booking {
	s.bookingsMu.RLock()
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if match == nil || match(b) {
			out = append(out, b)
		}
	}
	s.bookingsMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// reservationBase is the last reservation ID before the first one issued.
const reservationBase = 1000

// NextReservationID issues group reservation IDs starting at 1001.
func (s *Store) NextReservationID() int64 {
	return reservationBase + s.reservations.Add(1)
}
