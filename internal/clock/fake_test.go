package clock

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	c := Fake(start)
	c.Advance(10 * time.Minute)
	if got := c.Now(); !got.Equal(start.Add(10 * time.Minute)) {
		t.Fatalf("Now() = %v", got)
	}
}

func TestFakeTickerFiresOncePerAdvance(t *testing.T) {
	c := Fake(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	tk := c.NewTicker(time.Minute)
	defer tk.Stop()

	c.Advance(30 * time.Second)
	select {
	case <-tk.C:
		t.Fatalf("ticker fired early")
	default:
	}

	c.Advance(5 * time.Minute)
	select {
	case <-tk.C:
	default:
		t.Fatalf("ticker did not fire")
	}
	select {
	case <-tk.C:
		t.Fatalf("ticker should drop extra ticks")
	default:
	}
}

func TestFakeTickerStop(t *testing.T) {
	c := Fake(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	tk := c.NewTicker(time.Minute)
	tk.Stop()
	c.Advance(time.Hour)
	select {
	case <-tk.C:
		t.Fatalf("stopped ticker fired")
	default:
	}
}
