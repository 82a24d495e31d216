package services

import (
	"time"

	"busticket/internal/clock"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/store"
	"busticket/internal/utils"
)

// AvailabilityService answers "which journeys can carry this party" and
// produces offers for a single journey.
type AvailabilityService struct {
	Store    *store.Store
	Journeys JourneyService
	Seats    SeatService
	Fares    FareService
	Clock    clock.Clock
	// HorizonDays counts today; 3 means today plus the next two days.
	HorizonDays int
	// HoldOnOffer makes GetOfferByID hold every free seat it reports.
	HoldOnOffer bool
	// Tokens is optional; when set, held offers carry a signed token.
	Tokens *OfferTokens
}

func (s AvailabilityService) now() time.Time {
	return clock.OrReal(s.Clock).Now()
}

func (s AvailabilityService) horizon() int {
	if s.HorizonDays > 0 {
		return s.HorizonDays
	}
	return domain.DefaultBookingHorizonDays
}

// ValidateSearch applies the availability input rules. CheckAvailability
// swallows the error; the transport layer reports it.
func (s AvailabilityService) ValidateSearch(origin, destination string, passengerCount int, journeyDate string) error {
	if _, err := s.Store.Corridor().Segment(origin, destination); err != nil {
		return err
	}
	if passengerCount <= 0 {
		return domain.ValidationError{Field: "passenger_count", Msg: "must be at least 1"}
	}
	now := s.now()
	date, err := utils.ParseDate(journeyDate, now.Location())
	if err != nil {
		return domain.ValidationError{Field: "journey_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	today := utils.StartOfDay(now)
	last := today.AddDate(0, 0, s.horizon()-1)
	if date.Before(today) || date.After(last) {
		return domain.ValidationError{Field: "journey_date", Msg: "outside the booking window"}
	}
	return nil
}

// CheckAvailability lists journeys on date that serve exactly origin to
// destination and still fit passengerCount. Seats booked on any overlapping
// journey of the same bus and date count against a candidate. Invalid input
// yields an empty list. The call has no side effects.
func (s AvailabilityService) CheckAvailability(origin, destination string, passengerCount int, journeyDate string) []models.Offer {
	if err := s.ValidateSearch(origin, destination, passengerCount, journeyDate); err != nil {
		return nil
	}
	corridor := s.Store.Corridor()
	candidate, _ := corridor.Segment(origin, destination)
	fare := s.Fares.Lookup(origin, destination)

	var offers []models.Offer
	for _, j := range s.Journeys.ByDate(journeyDate) {
		if !j.ServesRoute(origin, destination) {
			continue
		}
		var ids []int64
		for _, sib := range s.Journeys.ByBusAndDate(j.BusID, journeyDate) {
			seg, err := corridor.Segment(sib.FromStop, sib.ToStop)
			if err == nil && seg.Overlaps(candidate) {
				ids = append(ids, sib.ID)
			}
		}

		var (
			live      models.Journey
			labels    []string
			available int
		)
		err := s.Store.WithJourneys(ids, func(txs map[int64]*store.JourneyTx) error {
			consumed := map[string]bool{}
			for _, tx := range txs {
				for _, seat := range tx.Seats() {
					if seat.Booked {
						consumed[seat.Label] = true
					}
				}
			}
			self := txs[j.ID]
			live = self.Journey()
			available = live.TotalSeats - len(consumed)
			for _, seat := range self.Seats() {
				if !consumed[seat.Label] {
					labels = append(labels, seat.Label)
				}
			}
			return nil
		})
		if err != nil || available <= 0 || available < passengerCount || len(labels) < passengerCount {
			continue
		}

		offers = append(offers, s.buildOffer(live, origin, destination, passengerCount, fare, labels))
	}
	return offers
}

func (s AvailabilityService) buildOffer(j models.Journey, origin, destination string, passengerCount int, fare int64, labels []string) models.Offer {
	return models.Offer{
		JourneyID:          j.ID,
		BusID:              j.BusID,
		JourneyNumber:      j.JourneyNumber,
		Origin:             origin,
		Destination:        destination,
		DepartureTime:      j.DepartureTime,
		ArrivalTime:        j.DepartureTime.Add(domain.TransitTime),
		Direction:          j.Direction,
		TotalSeats:         j.TotalSeats,
		AvailableSeats:     len(labels),
		FarePerPassenger:   fare,
		TotalFare:          utils.TotalFare(fare, passengerCount),
		AvailableSeatsList: labels,
	}
}

// GetOfferByID prices one journey for the party. With HoldOnOffer every
// free unheld seat is held for the hold TTL and only those seats are
// reported. Only the journey's own seats are considered here.
func (s AvailabilityService) GetOfferByID(journeyID int64, passengerCount int, origin, destination string) (models.Offer, bool) {
	if passengerCount <= 0 {
		return models.Offer{}, false
	}
	j, ok := s.Journeys.Get(journeyID)
	if !ok || !j.ServesRoute(origin, destination) || j.AvailableSeats <= 0 {
		return models.Offer{}, false
	}

	labels, expiry, ok := s.Seats.HoldFreeSeats(journeyID, passengerCount, s.HoldOnOffer)
	if !ok {
		return models.Offer{}, false
	}

	fare := s.Fares.Lookup(origin, destination)
	offer := s.buildOffer(j, origin, destination, passengerCount, fare, labels)
	if !expiry.IsZero() {
		offer.HoldExpiresAt = utils.EpochMillis(expiry)
		if s.Tokens != nil {
			token, err := s.Tokens.Sign(offer, passengerCount)
			if err != nil {
				utils.LogEventf("", "availability", "sign_offer", "journey_id=%d err=%v", journeyID, err)
			} else {
				offer.OfferToken = token
			}
		}
	}
	return offer, true
}
