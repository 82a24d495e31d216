package services

import (
	"testing"
	"time"

	"busticket/internal/domain"
)

func TestSeedScheduleBuildsThreeDays(t *testing.T) {
	f := newFixture(t)

	all := f.journeys.All()
	if len(all) != 36 {
		t.Fatalf("journeys = %d, want 36", len(all))
	}
	first := all[0]
	if first.JourneyNumber != "JN-101" || first.FromStop != "A" || first.ToStop != "B" || first.Direction != "A->B" {
		t.Fatalf("first journey = %+v", first)
	}
	if first.DepartureTime.Hour() != 8 || first.JourneyDate != f.date(0) || first.TotalSeats != 40 || first.AvailableSeats != 40 {
		t.Fatalf("first journey timing/seats = %+v", first)
	}
	back := all[1]
	if back.JourneyNumber != "JN-101R" || back.FromStop != "B" || back.ToStop != "A" || back.DepartureTime.Hour() != 18 {
		t.Fatalf("return journey = %+v", back)
	}
	if back.BusID == first.BusID {
		t.Fatalf("forward and return must use different buses")
	}

	last := all[len(all)-1]
	if last.JourneyNumber != "JN-118R" || last.JourneyDate != f.date(2) {
		t.Fatalf("last journey = %+v", last)
	}
}

func TestJourneyQueries(t *testing.T) {
	f := newFixture(t)
	ad := f.journey(t, "A", "D", 1)

	siblings := f.journeys.ByBusAndDate(ad.BusID, ad.JourneyDate)
	if len(siblings) != 6 {
		t.Fatalf("siblings = %d, want 6", len(siblings))
	}
	for _, j := range siblings {
		if j.DepartureTime.Hour() != 8 {
			t.Fatalf("forward bus carries a return journey: %+v", j)
		}
	}
	if got := f.journeys.ByRoute("A", "D"); len(got) != 3 {
		t.Fatalf("ByRoute(A,D) = %d journeys", len(got))
	}
	if got := f.journeys.ByDate(f.date(3)); len(got) != 0 {
		t.Fatalf("no journeys expected beyond the horizon, got %d", len(got))
	}
	if _, ok := f.journeys.Get(9999); ok {
		t.Fatalf("unknown journey found")
	}
}

func TestCreateJourneyValidation(t *testing.T) {
	f := newFixture(t)
	bus := f.store.Buses()[0]
	dep := fixtureNow.Add(2 * time.Hour)

	if _, err := f.journeys.CreateJourney(NewJourney{BusID: bus.ID, DepartureTime: dep, FromStop: "A", ToStop: "A", TotalSeats: 4}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for same stop, got %v", err)
	}
	if _, err := f.journeys.CreateJourney(NewJourney{BusID: bus.ID, DepartureTime: dep, FromStop: "A", ToStop: "B", TotalSeats: 0}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero seats, got %v", err)
	}
	if _, err := f.journeys.CreateJourney(NewJourney{BusID: 404, DepartureTime: dep, FromStop: "A", ToStop: "B", TotalSeats: 4}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for unknown bus, got %v", err)
	}
	if _, err := f.journeys.CreateJourney(NewJourney{BusID: bus.ID, JourneyNumber: "JN-101", DepartureTime: dep, FromStop: "A", ToStop: "B", TotalSeats: 4}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate journey number, got %v", err)
	}
}
