package services

import (
	"fmt"
	"time"

	"busticket/internal/config"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/store"
	"busticket/internal/utils"
)

type JourneyService struct {
	Store *store.Store
}

// NewJourney is the input of CreateJourney.
type NewJourney struct {
	BusID         int64
	JourneyNumber string
	DepartureTime time.Time
	FromStop      string
	ToStop        string
	TotalSeats    int
}

func (s JourneyService) CreateJourney(in NewJourney) (models.Journey, error) {
	corridor := s.Store.Corridor()
	if _, err := corridor.Segment(in.FromStop, in.ToStop); err != nil {
		return models.Journey{}, err
	}
	if in.TotalSeats <= 0 {
		return models.Journey{}, domain.ValidationError{Field: "total_seats", Msg: "must be positive"}
	}
	if _, ok := s.Store.Bus(in.BusID); !ok {
		return models.Journey{}, domain.NotFoundError{Resource: "bus"}
	}
	date := utils.FormatDate(in.DepartureTime)
	if in.JourneyNumber != "" {
		for _, j := range s.ByDate(date) {
			if j.JourneyNumber == in.JourneyNumber {
				return models.Journey{}, domain.ConflictError{Resource: "journey", Msg: "journey number " + in.JourneyNumber + " already used on " + date}
			}
		}
	}
	return s.Store.AddJourney(models.Journey{
		BusID:         in.BusID,
		JourneyNumber: in.JourneyNumber,
		JourneyDate:   date,
		DepartureTime: in.DepartureTime,
		FromStop:      in.FromStop,
		ToStop:        in.ToStop,
		Direction:     in.FromStop + "->" + in.ToStop,
		TotalSeats:    in.TotalSeats,
	}), nil
}

func (s JourneyService) Get(id int64) (models.Journey, bool) {
	return s.Store.Journey(id)
}

func (s JourneyService) All() []models.Journey {
	return s.Store.Journeys(nil)
}

func (s JourneyService) ByDate(date string) []models.Journey {
	return s.Store.Journeys(func(j models.Journey) bool { return j.JourneyDate == date })
}

func (s JourneyService) ByBusAndDate(busID int64, date string) []models.Journey {
	return s.Store.Journeys(func(j models.Journey) bool {
		return j.BusID == busID && j.JourneyDate == date
	})
}

func (s JourneyService) ByRoute(from, to string) []models.Journey {
	return s.Store.Journeys(func(j models.Journey) bool { return j.ServesRoute(from, to) })
}

// SeedSchedule loads stops, fares and buses from sched and creates the
// timetable for days consecutive days starting at today. Each day the
// forward runs use one bus and the return runs the next one in the fleet.
func (s JourneyService) SeedSchedule(sched config.Schedule, fares FareService, today time.Time, days int) ([]models.Journey, error) {
	if err := sched.Validate(); err != nil {
		return nil, domain.ValidationError{Field: "schedule", Err: err, Msg: err.Error()}
	}
	for _, st := range sched.Stops {
		if _, exists := s.Store.StopByCode(st.Code); !exists {
			s.Store.AddStop(st.Code, st.Name, st.Ordinal)
		}
	}
	for _, f := range sched.Fares {
		if _, err := fares.UpsertFare(f.From, f.To, f.Price); err != nil {
			return nil, err
		}
	}
	buses := make([]models.Bus, 0, len(sched.Buses))
	for _, b := range sched.Buses {
		buses = append(buses, s.Store.AddBus(b.Code, b.Capacity))
	}
	if len(sched.Routes) == 0 {
		return nil, nil
	}

	base := utils.StartOfDay(today)
	counter := sched.FirstJourneyNumber
	var created []models.Journey
	for day := 0; day < days; day++ {
		date := base.AddDate(0, 0, day)
		forward := buses[(2*day)%len(buses)]
		backward := buses[(2*day+1)%len(buses)]

		for _, r := range sched.Routes {
			dep, _ := config.ParseClock(r.Departure)
			ret, _ := config.ParseClock(r.Return)
			seats := r.Seats
			if seats <= 0 {
				seats = forward.Capacity
			}
			number := fmt.Sprintf("JN-%d", counter)

			out, err := s.CreateJourney(NewJourney{
				BusID:         forward.ID,
				JourneyNumber: number,
				DepartureTime: date.Add(dep),
				FromStop:      r.From,
				ToStop:        r.To,
				TotalSeats:    seats,
			})
			if err != nil {
				return created, err
			}
			back, err := s.CreateJourney(NewJourney{
				BusID:         backward.ID,
				JourneyNumber: number + "R",
				DepartureTime: date.Add(ret),
				FromStop:      r.To,
				ToStop:        r.From,
				TotalSeats:    seats,
			})
			if err != nil {
				return created, err
			}
			created = append(created, out, back)
			counter++
		}
	}
	return created, nil
}
