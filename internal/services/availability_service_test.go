package services

import (
	"reflect"
	"testing"
	"time"

	"busticket/internal/domain"
)

func TestCheckAvailabilityEndToEnd(t *testing.T) {
	f := newFixture(t)

	offers := f.availability.CheckAvailability("A", "D", 2, f.date(0))
	if len(offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(offers))
	}
	o := offers[0]
	if o.FarePerPassenger != 150 || o.TotalFare != 300 || o.AvailableSeats != 40 || o.TotalSeats != 40 {
		t.Fatalf("unexpected offer %+v", o)
	}
	if len(o.AvailableSeatsList) != 40 || o.AvailableSeatsList[0] != "1A" || o.AvailableSeatsList[39] != "10D" {
		t.Fatalf("seat list = %v", o.AvailableSeatsList)
	}
	if !o.ArrivalTime.Equal(o.DepartureTime.Add(150 * time.Minute)) {
		t.Fatalf("arrival %v is not departure + 150m", o.ArrivalTime)
	}
	if o.Direction != "A->D" || o.HoldExpiresAt != 0 || o.OfferToken != "" {
		t.Fatalf("availability offers carry no hold: %+v", o)
	}
}

func TestCheckAvailabilitySubtractsOverlappingBookings(t *testing.T) {
	f := newFixture(t)
	ad := f.journey(t, "A", "D", 0)
	if _, err := f.reservations.Commit(f.ctx, ad.ID, passenger("Ana"), "A", "D", "1A"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	bc := f.availability.CheckAvailability("B", "C", 1, f.date(0))
	if len(bc) != 1 || bc[0].AvailableSeats != 39 {
		t.Fatalf("B->C should lose one seat to A->D, got %+v", bc)
	}
	for _, label := range bc[0].AvailableSeatsList {
		if label == "1A" {
			t.Fatalf("1A is consumed by an overlapping journey")
		}
	}

	// Same bus but different day is unaffected.
	if next := f.availability.CheckAvailability("B", "C", 1, f.date(1)); len(next) != 1 || next[0].AvailableSeats != 40 {
		t.Fatalf("next day should be untouched, got %+v", next)
	}
	// The return bus never overlaps the forward bus.
	if back := f.availability.CheckAvailability("C", "B", 1, f.date(0)); len(back) != 1 || back[0].AvailableSeats != 40 {
		t.Fatalf("return bus should be untouched, got %+v", back)
	}
}

func TestCheckAvailabilityIgnoresTouchingSegments(t *testing.T) {
	f := newFixture(t)
	ab := f.journey(t, "A", "B", 0)
	if _, err := f.reservations.Commit(f.ctx, ab.ID, passenger("Ana"), "A", "B", "1A"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	cd := f.availability.CheckAvailability("C", "D", 1, f.date(0))
	if len(cd) != 1 || cd[0].AvailableSeats != 40 || cd[0].AvailableSeatsList[0] != "1A" {
		t.Fatalf("C->D does not overlap A->B, got %+v", cd)
	}
	bc := f.availability.CheckAvailability("B", "C", 1, f.date(0))
	if len(bc) != 1 || bc[0].AvailableSeats != 40 {
		t.Fatalf("B->C only touches A->B at B, got %+v", bc)
	}
	ac := f.availability.CheckAvailability("A", "C", 1, f.date(0))
	if len(ac) != 1 || ac[0].AvailableSeats != 39 {
		t.Fatalf("A->C overlaps A->B, got %+v", ac)
	}
}

func TestCheckAvailabilityUnionOfLabels(t *testing.T) {
	f := newFixture(t)
	ab := f.journey(t, "A", "B", 0)
	ac := f.journey(t, "A", "C", 0)
	for _, c := range []struct {
		id    int64
		from  string
		to    string
		label string
	}{
		{ab.ID, "A", "B", "1A"},
		{ac.ID, "A", "C", "1A"},
		{ac.ID, "A", "C", "1B"},
	} {
		if _, err := f.reservations.Commit(f.ctx, c.id, passenger("Ana"), c.from, c.to, c.label); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}

	ad := f.availability.CheckAvailability("A", "D", 1, f.date(0))
	if len(ad) != 1 || ad[0].AvailableSeats != 38 {
		t.Fatalf("A->D should see {1A,1B} consumed, got %+v", ad)
	}
}

func TestCheckAvailabilityRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name         string
		origin, dest string
		pax          int
		date         string
	}{
		{"same stop", "A", "A", 1, f.date(0)},
		{"unknown origin", "X", "B", 1, f.date(0)},
		{"zero passengers", "A", "B", 0, f.date(0)},
		{"bad date", "A", "B", 1, "16-10-2026"},
		{"yesterday", "A", "B", 1, f.date(-1)},
		{"past horizon", "A", "B", 1, f.date(3)},
		{"too many passengers", "A", "B", 41, f.date(0)},
	}
	for _, tc := range cases {
		if got := f.availability.CheckAvailability(tc.origin, tc.dest, tc.pax, tc.date); len(got) != 0 {
			t.Fatalf("%s: expected no offers, got %d", tc.name, len(got))
		}
	}
	if offers := f.availability.CheckAvailability("A", "B", 1, f.date(2)); len(offers) != 1 {
		t.Fatalf("last horizon day should be bookable")
	}
	err := f.availability.ValidateSearch("A", "B", 1, f.date(5))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckAvailabilityIsIdempotent(t *testing.T) {
	f := newFixture(t)
	first := f.availability.CheckAvailability("B", "D", 3, f.date(1))
	second := f.availability.CheckAvailability("B", "D", 3, f.date(1))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated checks differ")
	}
	j := f.journey(t, "B", "D", 1)
	if holds := f.seats.ActiveHolds(j.ID); len(holds) != 0 {
		t.Fatalf("availability must not place holds, got %d", len(holds))
	}
}

func TestCheckAvailabilityFullyBooked(t *testing.T) {
	f := newEmptyFixture(t)
	j := f.smallJourney(t, "A", "B", 2)
	date := j.JourneyDate
	for _, label := range []string{"1A", "1B"} {
		if _, err := f.reservations.Commit(f.ctx, j.ID, passenger("Ana"), "A", "B", label); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}
	if got := f.availability.CheckAvailability("A", "B", 1, date); len(got) != 0 {
		t.Fatalf("fully booked journey offered: %+v", got)
	}
}

func TestGetOfferByIDHoldsEveryFreeSeat(t *testing.T) {
	f := newFixture(t)
	j := f.journey(t, "A", "D", 0)

	offer, ok := f.availability.GetOfferByID(j.ID, 2, "A", "D")
	if !ok {
		t.Fatalf("expected an offer")
	}
	if len(offer.AvailableSeatsList) != 40 || offer.AvailableSeats != 40 || offer.TotalFare != 300 {
		t.Fatalf("unexpected offer %+v", offer)
	}
	if want := fixtureNow.Add(10 * time.Minute).UnixMilli(); offer.HoldExpiresAt != want {
		t.Fatalf("hold expiry = %d, want %d", offer.HoldExpiresAt, want)
	}
	if len(f.seats.ActiveHolds(j.ID)) != 40 {
		t.Fatalf("every free seat should be held")
	}

	claims, err := f.tokens.Verify(offer.OfferToken)
	if err != nil || !claims.Matches(j.ID, "A", "D", 2) {
		t.Fatalf("offer token invalid: %v %+v", err, claims)
	}

	if _, ok := f.availability.GetOfferByID(j.ID, 1, "A", "D"); ok {
		t.Fatalf("all seats are held, second offer must fail")
	}
	// Holds are advisory: availability still reports all seats.
	if got := f.availability.CheckAvailability("A", "D", 1, f.date(0)); len(got) != 1 || got[0].AvailableSeats != 40 {
		t.Fatalf("holds must not change availability, got %+v", got)
	}

	f.clock.Advance(10 * time.Minute)
	if _, ok := f.availability.GetOfferByID(j.ID, 1, "A", "D"); !ok {
		t.Fatalf("offer should succeed once the holds expire")
	}
}

func TestGetOfferByIDRejects(t *testing.T) {
	f := newFixture(t)
	j := f.journey(t, "A", "D", 0)

	if _, ok := f.availability.GetOfferByID(9999, 1, "A", "D"); ok {
		t.Fatalf("unknown journey")
	}
	if _, ok := f.availability.GetOfferByID(j.ID, 1, "A", "C"); ok {
		t.Fatalf("route mismatch")
	}
	if _, ok := f.availability.GetOfferByID(j.ID, 41, "A", "D"); ok {
		t.Fatalf("more passengers than seats")
	}
	if _, ok := f.availability.GetOfferByID(j.ID, 0, "A", "D"); ok {
		t.Fatalf("zero passengers")
	}
}

func TestGetOfferByIDWithoutHolding(t *testing.T) {
	f := newFixture(t)
	f.availability.HoldOnOffer = false
	j := f.journey(t, "B", "C", 0)

	offer, ok := f.availability.GetOfferByID(j.ID, 2, "B", "C")
	if !ok || len(offer.AvailableSeatsList) != 40 {
		t.Fatalf("offer = %+v ok=%v", offer, ok)
	}
	if offer.HoldExpiresAt != 0 || offer.OfferToken != "" {
		t.Fatalf("no holds means no expiry or token: %+v", offer)
	}
	if len(f.seats.ActiveHolds(j.ID)) != 0 {
		t.Fatalf("holds placed with HoldOnOffer disabled")
	}
}
