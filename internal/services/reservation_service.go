package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"busticket/internal/clock"
	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/store"
	"busticket/internal/utils"

	"github.com/google/uuid"
)

// BookingRecorder receives every committed booking. Failures are logged and
// never undo the commit.
type BookingRecorder interface {
	Record(ctx context.Context, b models.Booking) error
}

type ReservationService struct {
	Store    *store.Store
	Journeys JourneyService
	Seats    SeatService
	Fares    FareService
	Clock    clock.Clock
	Tokens   *OfferTokens
	Ledger   BookingRecorder
}

func (s ReservationService) now() time.Time {
	return clock.OrReal(s.Clock).Now()
}

func newBookingNumber(now time.Time) string {
	return "RS" + strconv.FormatInt(utils.EpochMillis(now), 10) + uuid.NewString()[:6]
}

// Commit books one seat for one passenger. The free check, the seat update
// and the counter decrement happen under the journey lock, so two commits
// racing for the same seat produce exactly one booking.
func (s ReservationService) Commit(ctx context.Context, journeyID int64, p models.Passenger, fromStop, toStop, seatLabel string) (models.Booking, error) {
	now := s.now()
	var journey models.Journey
	err := s.Store.WithJourney(journeyID, func(tx *store.JourneyTx) error {
		seat, ok := tx.Seat(seatLabel)
		if !ok {
			return domain.NotFoundError{Resource: "seat " + seatLabel}
		}
		if seat.Booked {
			return domain.ConflictError{Resource: "seat", Msg: seatLabel + " is already booked"}
		}
		seat.Booked = true
		seat.PassengerName = p.Name
		seat.PassengerPhone = p.Phone
		seat.BookedAt = now
		tx.UpdateSeat(seat)
		tx.DecrementAvailable()
		tx.RemoveHolds(func(h models.SeatHold) bool { return h.SeatLabel == seatLabel })
		journey = tx.Journey()
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	dep := journey.DepartureTime
	b := s.Store.AddBooking(models.Booking{
		BookingNumber:  newBookingNumber(now),
		JourneyID:      journeyID,
		PassengerName:  p.Name,
		PassengerPhone: p.Phone,
		PassengerEmail: p.Email,
		FromStop:       fromStop,
		ToStop:         toStop,
		SeatLabel:      seatLabel,
		Fare:           s.Fares.Lookup(fromStop, toStop),
		Status:         domain.BookingConfirmed,
		BookingTime:    now,
		TravelDate:     time.Date(dep.Year(), dep.Month(), dep.Day(), dep.Hour(), dep.Minute(), 0, 0, dep.Location()),
	})

	utils.LogEventf(requestIDFrom(ctx), "reservation", "commit", "journey_id=%d seat=%s booking=%s", journeyID, seatLabel, b.BookingNumber)
	if s.Ledger != nil {
		if err := s.Ledger.Record(ctx, b); err != nil {
			utils.LogEventf(requestIDFrom(ctx), "reservation", "ledger", "booking=%s err=%v", b.BookingNumber, err)
		}
	}
	return b, nil
}

// ValidateGroupRequest checks the request shape before any journey state
// is read.
func ValidateGroupRequest(req models.GroupBookingRequest, corridor domain.Corridor) error {
	if req.JourneyID < 1 {
		return domain.ValidationError{Field: "journey_id", Msg: "must be a positive integer"}
	}
	if _, err := corridor.Segment(req.Origin, req.Destination); err != nil {
		return err
	}
	if req.PassengerCount < 1 {
		return domain.ValidationError{Field: "passenger_count", Msg: "must be at least 1"}
	}
	if !utils.IsValidEmail(req.ContactEmail) {
		return domain.ValidationError{Field: "contact_email", Msg: "invalid email"}
	}
	if len(req.Passengers) != req.PassengerCount {
		return domain.ValidationError{Field: "passengers", Msg: "passenger count mismatch"}
	}
	for i, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" || p.Phone == "" || p.Email == "" {
			return domain.ValidationError{Field: fmt.Sprintf("passengers[%d]", i), Msg: "missing passenger details"}
		}
		if !utils.IsValidPhone(p.Phone) || !utils.IsValidEmail(p.Email) {
			return domain.ValidationError{Field: fmt.Sprintf("passengers[%d]", i), Msg: "invalid passenger phone or email"}
		}
	}
	if req.Payment.Amount <= 0 {
		return domain.ValidationError{Field: "payment", Msg: "invalid payment information"}
	}
	return nil
}

// BookGroup validates the request, picks seats with AssignAdjacentSeats and
// commits every passenger. When not every passenger gets a seat the result is
// a PartialBookingError and the seats already committed stay booked.
func (s ReservationService) BookGroup(ctx context.Context, req models.GroupBookingRequest) (models.Reservation, error) {
	if err := ValidateGroupRequest(req, s.Store.Corridor()); err != nil {
		return models.Reservation{}, err
	}

	journey, ok := s.Journeys.Get(req.JourneyID)
	if !ok {
		return models.Reservation{}, domain.NotFoundError{Resource: "journey"}
	}
	if !journey.ServesRoute(req.Origin, req.Destination) {
		return models.Reservation{}, domain.ValidationError{Field: "route", Msg: "journey route does not match requested route", Err: domain.DomainError{Code: "ROUTE_MISMATCH"}}
	}
	if journey.AvailableSeats < req.PassengerCount {
		return models.Reservation{}, domain.ConflictError{Resource: "journey", Msg: "not enough available seats", Err: domain.DomainError{Code: "INSUFFICIENT_SEATS"}}
	}

	fare := s.Fares.Lookup(req.Origin, req.Destination)
	total := utils.TotalFare(fare, req.PassengerCount)
	if !utils.AmountMatches(req.Payment.Amount, total) {
		return models.Reservation{}, domain.ValidationError{Field: "payment", Msg: "payment amount does not match calculated fare", Err: domain.DomainError{Code: "PAYMENT_MISMATCH"}}
	}

	if req.OfferToken != "" {
		if s.Tokens == nil {
			return models.Reservation{}, domain.ValidationError{Field: "offer_token", Msg: "offer tokens are not enabled"}
		}
		claims, err := s.Tokens.Verify(req.OfferToken)
		if err != nil {
			return models.Reservation{}, err
		}
		if !claims.Matches(req.JourneyID, req.Origin, req.Destination, req.PassengerCount) {
			return models.Reservation{}, domain.ValidationError{Field: "offer_token", Msg: "offer does not match booking"}
		}
	}

	resID := s.Store.NextReservationID()
	seats := s.Seats.AssignAdjacentSeats(req.JourneyID, len(req.Passengers))

	var (
		tickets   []models.Ticket
		committed []string
		lastErr   error
	)
	for i, p := range req.Passengers {
		if i >= len(seats) {
			lastErr = domain.ConflictError{Resource: "seat", Msg: "no seat left to assign"}
			continue
		}
		b, err := s.Commit(ctx, req.JourneyID, p, req.Origin, req.Destination, seats[i].Label)
		if err != nil {
			lastErr = err
			continue
		}
		committed = append(committed, b.BookingNumber)
		tickets = append(tickets, models.Ticket{
			TicketNumber:   fmt.Sprintf("TICKET-%d-%d-%d", utils.EpochMillis(s.now()), resID, len(committed)),
			BookingNumber:  b.BookingNumber,
			PassengerName:  b.PassengerName,
			PassengerPhone: b.PassengerPhone,
			PassengerEmail: b.PassengerEmail,
			SeatNumber:     b.SeatLabel,
			Fare:           b.Fare,
			Status:         b.Status,
		})
	}

	if len(committed) < req.PassengerCount {
		utils.LogEventf(requestIDFrom(ctx), "reservation", "book_group", "reservation_id=%d partial=%d/%d", resID, len(committed), req.PassengerCount)
		if !domain.IsConflict(lastErr) {
			lastErr = domain.ConflictError{Resource: "seat", Msg: "could not book all passengers", Err: lastErr}
		}
		return models.Reservation{}, domain.PartialBookingError{Requested: req.PassengerCount, Committed: committed, Err: lastErr}
	}

	now := s.now()
	journey, _ = s.Journeys.Get(req.JourneyID)
	res := models.Reservation{
		ReservationID:  resID,
		BookingNumber:  fmt.Sprintf("BK-%d-%d", utils.EpochMillis(now), resID),
		TicketNumber:   tickets[0].TicketNumber,
		Status:         domain.BookingConfirmed,
		ContactEmail:   req.ContactEmail,
		Journey:        journey,
		ArrivalTime:    journey.DepartureTime.Add(domain.TransitTime),
		Origin:         req.Origin,
		Destination:    req.Destination,
		PassengerCount: req.PassengerCount,
		TotalAmount:    total,
		PaymentMethod:  req.Payment.Method,
		Tickets:        tickets,
		CreatedAt:      now,
	}
	utils.LogEventf(requestIDFrom(ctx), "reservation", "book_group", "reservation_id=%d booking=%s seats=%d", resID, res.BookingNumber, len(tickets))
	return res, nil
}

func (s ReservationService) GetBooking(id int64) (models.Booking, bool) {
	return s.Store.Booking(id)
}

func (s ReservationService) GetBookingByNumber(number string) (models.Booking, bool) {
	return s.Store.BookingByNumber(number)
}

func (s ReservationService) BookingsByJourney(journeyID int64) []models.Booking {
	return s.Store.Bookings(func(b models.Booking) bool { return b.JourneyID == journeyID })
}

func (s ReservationService) BookingsByPassenger(phone string) []models.Booking {
	return s.Store.Bookings(func(b models.Booking) bool { return b.PassengerPhone == phone })
}

func (s ReservationService) AllBookings() []models.Booking {
	return s.Store.Bookings(nil)
}
