package main

import (
	"io"
	"strings"
	"time"

	"busticket/internal/domain/models"
	"busticket/internal/utils"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func renderOffers(out io.Writer, offers []models.Offer) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Journey", "Number", "Route", "Departs", "Arrives", "Seats", "Fare", "Total"})
	for _, o := range offers {
		t.AppendRow(table.Row{
			o.JourneyID,
			o.JourneyNumber,
			o.Origin + " > " + o.Destination,
			o.DepartureTime.Format(time.DateTime),
			o.ArrivalTime.Format(time.TimeOnly),
			o.AvailableSeats,
			utils.FormatMoney(o.FarePerPassenger),
			utils.FormatMoney(o.TotalFare),
		})
	}
	t.Render()
}

func renderOffer(out io.Writer, o models.Offer) {
	renderOffers(out, []models.Offer{o})
	t := newTable(out)
	t.AppendRow(table.Row{"Seats", strings.Join(o.AvailableSeatsList, " ")})
	if o.HoldExpiresAt > 0 {
		t.AppendRow(table.Row{"Held until", time.UnixMilli(o.HoldExpiresAt).Format(time.DateTime)})
	}
	if o.OfferToken != "" {
		t.AppendRow(table.Row{"Offer token", o.OfferToken})
	}
	t.Render()
}

// renderSeatMap draws the coach one row per line. Booked seats show as
// XX and held seats as lower case labels.
func renderSeatMap(out io.Writer, seats []models.SeatState) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Row", "A", "B", "", "C", "D"})
	curr := 0
	cells := map[string]string{}
	flush := func() {
		if curr == 0 {
			return
		}
		t.AppendRow(table.Row{curr, cells["A"], cells["B"], "", cells["C"], cells["D"]})
		cells = map[string]string{}
	}
	for _, s := range seats {
		if s.Row != curr {
			flush()
			curr = s.Row
		}
		switch s.State {
		case models.SeatBooked:
			cells[s.Column] = "XX"
		case models.SeatHeld:
			cells[s.Column] = strings.ToLower(s.Label)
		default:
			cells[s.Column] = s.Label
		}
	}
	flush()
	t.Render()
}

func renderBooking(out io.Writer, b models.Booking) {
	t := newTable(out)
	t.AppendRows([]table.Row{
		{"Booking", b.BookingNumber},
		{"Status", string(b.Status)},
		{"Journey", b.JourneyID},
		{"Route", b.FromStop + " > " + b.ToStop},
		{"Seat", b.SeatLabel},
		{"Passenger", b.PassengerName},
		{"Phone", utils.MaskPhone(b.PassengerPhone)},
		{"Fare", utils.FormatMoney(b.Fare)},
		{"Travel date", utils.FormatDate(b.TravelDate)},
	})
	t.Render()
}
