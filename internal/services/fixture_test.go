package services

import (
	"context"
	"testing"
	"time"

	"busticket/internal/clock"
	"busticket/internal/config"
	"busticket/internal/domain/models"
	"busticket/internal/store"
	"busticket/internal/utils"
)

var fixtureNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type fixture struct {
	ctx          context.Context
	clock        *clock.FakeClock
	store        *store.Store
	fares        FareService
	journeys     JourneyService
	seats        SeatService
	availability AvailabilityService
	reservations ReservationService
	tokens       *OfferTokens
}

// newFixture seeds the default three day schedule on a fake clock.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newEmptyFixture(t)
	if _, err := f.journeys.SeedSchedule(config.DefaultSchedule(), f.fares, f.clock.Now(), 3); err != nil {
		t.Fatalf("SeedSchedule: %v", err)
	}
	return f
}

// newEmptyFixture wires the services without any reference data.
func newEmptyFixture(t *testing.T) *fixture {
	t.Helper()
	c := clock.Fake(fixtureNow)
	st := store.New()
	tokens, err := NewOfferTokens("test-secret", c)
	if err != nil {
		t.Fatalf("NewOfferTokens: %v", err)
	}

	fares := FareService{Store: st, Clock: c}
	journeys := JourneyService{Store: st}
	seats := SeatService{Store: st, Clock: c, HoldTTL: 10 * time.Minute}
	return &fixture{
		ctx:      WithRequestID(context.Background(), "test"),
		clock:    c,
		store:    st,
		fares:    fares,
		journeys: journeys,
		seats:    seats,
		tokens:   tokens,
		availability: AvailabilityService{
			Store: st, Journeys: journeys, Seats: seats, Fares: fares, Clock: c,
			HorizonDays: 3, HoldOnOffer: true, Tokens: tokens,
		},
		reservations: ReservationService{
			Store: st, Journeys: journeys, Seats: seats, Fares: fares, Clock: c, Tokens: tokens,
		},
	}
}

func (f *fixture) date(day int) string {
	return utils.FormatDate(fixtureNow.AddDate(0, 0, day))
}

// journey finds the journey serving from->to on today+day.
func (f *fixture) journey(t *testing.T, from, to string, day int) models.Journey {
	t.Helper()
	for _, j := range f.journeys.ByDate(f.date(day)) {
		if j.ServesRoute(from, to) {
			return j
		}
	}
	t.Fatalf("no journey %s->%s on day %d", from, to, day)
	return models.Journey{}
}

// smallJourney adds a journey with its own bus and the given seat count.
func (f *fixture) smallJourney(t *testing.T, from, to string, seats int) models.Journey {
	t.Helper()
	if _, ok := f.store.StopByCode("A"); !ok {
		for i, code := range []string{"A", "B", "C", "D"} {
			f.store.AddStop(code, "Stop "+code, i+1)
		}
		for _, fare := range config.DefaultSchedule().Fares {
			if _, err := f.fares.UpsertFare(fare.From, fare.To, fare.Price); err != nil {
				t.Fatalf("UpsertFare: %v", err)
			}
		}
	}
	bus := f.store.AddBus("BUS-T", seats)
	j, err := f.journeys.CreateJourney(NewJourney{
		BusID:         bus.ID,
		DepartureTime: fixtureNow.Add(time.Hour),
		FromStop:      from,
		ToStop:        to,
		TotalSeats:    seats,
	})
	if err != nil {
		t.Fatalf("CreateJourney: %v", err)
	}
	return j
}

func passenger(name string) models.Passenger {
	return models.Passenger{Name: name, Phone: "9876543210", Email: "rider@example.com"}
}

func seatLabels(seats []models.Seat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.Label)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
