package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Schedule describes the reference data and the daily timetable the
// inventory is seeded with.
type Schedule struct {
	Stops  []StopConfig  `yaml:"stops"`
	Fares  []FareConfig  `yaml:"fares"`
	Buses  []BusConfig   `yaml:"buses"`
	Routes []RouteConfig `yaml:"routes"`

	// FirstJourneyNumber seeds the JN-<n> counter.
	FirstJourneyNumber int `yaml:"first_journey_number"`
}

type StopConfig struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Ordinal int    `yaml:"ordinal"`
}

type FareConfig struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Price int64  `yaml:"price"`
}

type BusConfig struct {
	Code     string `yaml:"code"`
	Capacity int    `yaml:"capacity"`
}

// RouteConfig runs once a day in each direction: forward at Departure on
// one bus and back at Return on the next bus in the fleet.
type RouteConfig struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Departure string `yaml:"departure"`
	Return    string `yaml:"return"`
	Seats     int    `yaml:"seats"`
}

// DefaultSchedule is the four stop line with three 40 seat coaches.
func DefaultSchedule() Schedule {
	pairs := [][2]string{{"A", "B"}, {"A", "C"}, {"A", "D"}, {"B", "C"}, {"B", "D"}, {"C", "D"}}
	prices := []int64{50, 100, 150, 50, 100, 50}

	s := Schedule{
		Stops: []StopConfig{
			{Code: "A", Name: "Stop A", Ordinal: 1},
			{Code: "B", Name: "Stop B", Ordinal: 2},
			{Code: "C", Name: "Stop C", Ordinal: 3},
			{Code: "D", Name: "Stop D", Ordinal: 4},
		},
		Buses: []BusConfig{
			{Code: "BUS-001", Capacity: 40},
			{Code: "BUS-002", Capacity: 40},
			{Code: "BUS-003", Capacity: 40},
		},
		FirstJourneyNumber: 101,
	}
	for i, p := range pairs {
		s.Fares = append(s.Fares, FareConfig{From: p[0], To: p[1], Price: prices[i]})
		s.Routes = append(s.Routes, RouteConfig{From: p[0], To: p[1], Departure: "08:00", Return: "18:00", Seats: 40})
	}
	return s
}

// LoadSchedule reads a YAML schedule. An empty path yields DefaultSchedule.
func LoadSchedule(path string) (Schedule, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultSchedule(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, fmt.Errorf("read schedule %s: %w", path, err)
	}
	return ParseSchedule(raw)
}

func ParseSchedule(raw []byte) (Schedule, error) {
	var s Schedule
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Schedule{}, fmt.Errorf("parse schedule: %w", err)
	}
	if s.FirstJourneyNumber <= 0 {
		s.FirstJourneyNumber = 101
	}
	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

// Validate checks cross references between stops, fares, buses and routes.
func (s Schedule) Validate() error {
	if len(s.Stops) < 2 {
		return fmt.Errorf("schedule: need at least two stops")
	}
	codes := map[string]bool{}
	ordinals := map[int]bool{}
	for _, st := range s.Stops {
		if st.Code == "" {
			return fmt.Errorf("schedule: stop without code")
		}
		if codes[st.Code] {
			return fmt.Errorf("schedule: duplicate stop %q", st.Code)
		}
		if ordinals[st.Ordinal] {
			return fmt.Errorf("schedule: duplicate ordinal %d", st.Ordinal)
		}
		codes[st.Code] = true
		ordinals[st.Ordinal] = true
	}
	for _, f := range s.Fares {
		if !codes[f.From] || !codes[f.To] || f.From == f.To {
			return fmt.Errorf("schedule: invalid fare %s-%s", f.From, f.To)
		}
		if f.Price <= 0 {
			return fmt.Errorf("schedule: fare %s-%s must be positive", f.From, f.To)
		}
	}
	if len(s.Routes) > 0 && len(s.Buses) < 2 {
		return fmt.Errorf("schedule: routes need at least two buses")
	}
	for _, b := range s.Buses {
		if b.Code == "" || b.Capacity <= 0 {
			return fmt.Errorf("schedule: invalid bus %q", b.Code)
		}
	}
	for _, r := range s.Routes {
		if !codes[r.From] || !codes[r.To] || r.From == r.To {
			return fmt.Errorf("schedule: invalid route %s-%s", r.From, r.To)
		}
		if _, err := ParseClock(r.Departure); err != nil {
			return fmt.Errorf("schedule: route %s-%s: %w", r.From, r.To, err)
		}
		if _, err := ParseClock(r.Return); err != nil {
			return fmt.Errorf("schedule: route %s-%s: %w", r.From, r.To, err)
		}
	}
	return nil
}

// ParseClock parses HH:MM into an offset from midnight.
func ParseClock(hhmm string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", hhmm)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
