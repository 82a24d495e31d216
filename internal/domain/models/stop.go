package models

import "time"

// Stop is a named point on the corridor. Ordinal fixes its position.
type Stop struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Ordinal int    `json:"ordinal"`
}

// Fare is the undirected price between two stops.
type Fare struct {
	ID          int64     `json:"id"`
	FromStopID  int64     `json:"from_stop_id"`
	ToStopID    int64     `json:"to_stop_id"`
	Price       int64     `json:"price"`
	LastUpdated time.Time `json:"last_updated"`
}

// Connects reports whether the fare covers the pair in either direction.
func (f Fare) Connects(a, b int64) bool {
	return (f.FromStopID == a && f.ToStopID == b) || (f.FromStopID == b && f.ToStopID == a)
}

// FareQuote is the resolved answer of a fare lookup.
type FareQuote struct {
	From        Stop      `json:"from_stop"`
	To          Stop      `json:"to_stop"`
	Price       int64     `json:"price"`
	LastUpdated time.Time `json:"last_updated"`
}

type Bus struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Capacity int    `json:"capacity"`
}
