package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"busticket/internal/domain/models"
)

func TestAddHoldLifecycle(t *testing.T) {
	f := newFixture(t)
	j := f.journey(t, "A", "B", 0)

	if !f.seats.AddHold(j.ID, "1A") {
		t.Fatalf("first hold should succeed")
	}
	if f.seats.AddHold(j.ID, "1A") {
		t.Fatalf("second hold on an actively held seat should fail")
	}
	if !f.seats.IsSeatOnHold(j.ID, "1A") {
		t.Fatalf("seat should report held")
	}
	if f.seats.AddHold(j.ID, "9Z") {
		t.Fatalf("hold on unknown seat should fail")
	}

	f.clock.Advance(10*time.Minute - time.Second)
	if !f.seats.IsSeatOnHold(j.ID, "1A") {
		t.Fatalf("hold should still be active just before expiry")
	}
	f.clock.Advance(time.Second)
	if f.seats.IsSeatOnHold(j.ID, "1A") {
		t.Fatalf("hold should expire at held_at + ttl")
	}
	if !f.seats.AddHold(j.ID, "1A") {
		t.Fatalf("expired hold must not block a new one")
	}
}

func TestAddHoldRejectsBookedSeat(t *testing.T) {
	f := newFixture(t)
	j := f.journey(t, "A", "B", 0)
	if _, err := f.reservations.Commit(f.ctx, j.ID, passenger("Ana"), "A", "B", "2C"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if f.seats.AddHold(j.ID, "2C") {
		t.Fatalf("booked seat cannot be held")
	}
	if f.seats.IsSeatAvailable(j.ID, "2C") {
		t.Fatalf("booked seat reported available")
	}
}

func TestConcurrentHoldsSingleWinner(t *testing.T) {
	f := newFixture(t)
	j := f.journey(t, "A", "C", 0)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.seats.AddHold(j.ID, "5D") {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("holds won = %d, want 1", wins)
	}
	if got := f.seats.ActiveHolds(j.ID); len(got) != 1 {
		t.Fatalf("active holds = %d", len(got))
	}
}

func TestSweepExpiredHolds(t *testing.T) {
	f := newFixture(t)
	j := f.journey(t, "A", "B", 0)
	f.seats.AddHold(j.ID, "1A")
	f.clock.Advance(5 * time.Minute)
	f.seats.AddHold(j.ID, "1B")
	f.clock.Advance(6 * time.Minute)

	if n := f.seats.SweepExpiredHolds(); n != 1 {
		t.Fatalf("swept %d holds, want 1", n)
	}
	holds := f.seats.ActiveHolds(j.ID)
	if len(holds) != 1 || holds[0].SeatLabel != "1B" {
		t.Fatalf("remaining holds = %+v", holds)
	}
	if !f.seats.ReleaseHold(j.ID, "1B") || f.seats.ReleaseHold(j.ID, "1B") {
		t.Fatalf("ReleaseHold should report removal exactly once")
	}
}

func TestRunHoldSweeperStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.seats.RunHoldSweeper(ctx, time.Minute)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop")
	}
}

func TestAssignAdjacentSeatsPrefersRowRun(t *testing.T) {
	f := newEmptyFixture(t)
	j := f.smallJourney(t, "A", "B", 4)

	got := seatLabels(f.seats.AssignAdjacentSeats(j.ID, 3))
	if !equalStrings(got, []string{"1A", "1B", "1C"}) {
		t.Fatalf("assigned %v", got)
	}

	if _, err := f.reservations.Commit(f.ctx, j.ID, passenger("Ana"), "A", "B", "1B"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got = seatLabels(f.seats.AssignAdjacentSeats(j.ID, 3))
	if !equalStrings(got, []string{"1A", "1C", "1D"}) {
		t.Fatalf("fallback assigned %v", got)
	}

	got = seatLabels(f.seats.AssignAdjacentSeats(j.ID, 5))
	if len(got) != 3 {
		t.Fatalf("only the 3 free seats should come back, got %v", got)
	}
}

func TestAssignAdjacentSeatsSkipsBrokenRows(t *testing.T) {
	f := newEmptyFixture(t)
	j := f.smallJourney(t, "A", "B", 8)
	if _, err := f.reservations.Commit(f.ctx, j.ID, passenger("Ana"), "A", "B", "1C"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got := seatLabels(f.seats.AssignAdjacentSeats(j.ID, 3))
	if !equalStrings(got, []string{"2A", "2B", "2C"}) {
		t.Fatalf("assigned %v", got)
	}
	got = seatLabels(f.seats.AssignAdjacentSeats(j.ID, 2))
	if !equalStrings(got, []string{"1A", "1B"}) {
		t.Fatalf("assigned %v", got)
	}
}

func TestSeatMapStates(t *testing.T) {
	f := newEmptyFixture(t)
	j := f.smallJourney(t, "A", "B", 4)
	f.seats.AddHold(j.ID, "1B")
	if _, err := f.reservations.Commit(f.ctx, j.ID, passenger("Ana"), "A", "B", "1D"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	states, err := f.seats.SeatMap(j.ID)
	if err != nil {
		t.Fatalf("SeatMap: %v", err)
	}
	want := map[string]string{"1A": models.SeatFree, "1B": models.SeatHeld, "1C": models.SeatFree, "1D": models.SeatBooked}
	for _, s := range states {
		if want[s.Label] != s.State {
			t.Fatalf("seat %s state %s, want %s", s.Label, s.State, want[s.Label])
		}
	}

	if _, err := f.seats.SeatMap(999); err == nil {
		t.Fatalf("expected error for unknown journey")
	}
}

func TestHoldFreeSeats(t *testing.T) {
	f := newEmptyFixture(t)
	j := f.smallJourney(t, "A", "B", 4)
	f.seats.AddHold(j.ID, "1A")

	labels, expiry, ok := f.seats.HoldFreeSeats(j.ID, 2, true)
	if !ok || !equalStrings(labels, []string{"1B", "1C", "1D"}) {
		t.Fatalf("HoldFreeSeats = %v ok=%v", labels, ok)
	}
	if !expiry.Equal(fixtureNow.Add(10 * time.Minute)) {
		t.Fatalf("expiry = %v", expiry)
	}
	if _, _, ok := f.seats.HoldFreeSeats(j.ID, 1, true); ok {
		t.Fatalf("every seat is held, nothing should qualify")
	}

	free, err := f.seats.AvailableSeatsExcludingHolds(j.ID)
	if err != nil || len(free) != 0 {
		t.Fatalf("free unheld seats = %v err=%v", free, err)
	}
	avail, _ := f.seats.AvailableSeats(j.ID)
	if len(avail) != 4 {
		t.Fatalf("holds must not change availability, got %d", len(avail))
	}
}

func TestPickAdjacentSortsInput(t *testing.T) {
	free := []models.Seat{
		{Label: "2A", Row: 2, Column: "A"},
		{Label: "1D", Row: 1, Column: "D"},
		{Label: "2B", Row: 2, Column: "B"},
	}
	got := seatLabels(pickAdjacent(free, 2))
	if !equalStrings(got, []string{"2A", "2B"}) {
		t.Fatalf("pickAdjacent = %v", got)
	}
}

