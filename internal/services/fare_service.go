package services

import (
	"strconv"
	"strings"

	"busticket/internal/clock"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/store"
)

type FareService struct {
	Store *store.Store
	Clock clock.Clock
}

// ResolveStop accepts a numeric stop ID or a stop code (any case).
func (s FareService) ResolveStop(identifier string) (models.Stop, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return models.Stop{}, false
	}
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return s.Store.StopByID(id)
	}
	return s.Store.StopByCode(identifier)
}

func (s FareService) ListStops() []models.Stop {
	return s.Store.Stops()
}

func (s FareService) ListFares() []models.Fare {
	return s.Store.Fares()
}

// CalculateFare resolves both stops and finds the undirected fare.
func (s FareService) CalculateFare(from, to string) (models.FareQuote, bool) {
	a, ok := s.ResolveStop(from)
	if !ok {
		return models.FareQuote{}, false
	}
	b, ok := s.ResolveStop(to)
	if !ok || a.ID == b.ID {
		return models.FareQuote{}, false
	}
	f, ok := s.Store.FareBetween(a.ID, b.ID)
	if !ok {
		return models.FareQuote{}, false
	}
	return models.FareQuote{From: a, To: b, Price: f.Price, LastUpdated: f.LastUpdated}, true
}

// Lookup is the per passenger price between two stops, 0 when unknown.
func (s FareService) Lookup(from, to string) int64 {
	q, ok := s.CalculateFare(from, to)
	if !ok {
		return 0
	}
	return q.Price
}

// UpsertFare sets the price for the unordered stop pair.
func (s FareService) UpsertFare(from, to string, price int64) (models.Fare, error) {
	if price <= 0 {
		return models.Fare{}, domain.ValidationError{Field: "price", Msg: "must be positive"}
	}
	a, ok := s.ResolveStop(from)
	if !ok {
		return models.Fare{}, domain.NotFoundError{Resource: "stop " + from}
	}
	b, ok := s.ResolveStop(to)
	if !ok {
		return models.Fare{}, domain.NotFoundError{Resource: "stop " + to}
	}
	if a.ID == b.ID {
		return models.Fare{}, domain.ValidationError{Field: "to", Msg: "must differ from from"}
	}
	return s.Store.PutFare(a.ID, b.ID, price, clock.OrReal(s.Clock).Now()), nil
}
