package services

import (
	"bytes"
	"fmt"
	"strings"

	"busticket/internal/domain"
	"busticket/internal/domain/models"
	"busticket/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders per-booking PDF documents.
type DocsService struct {
	Reservations ReservationService
	Journeys     JourneyService
	Buses        interface {
		Bus(id int64) (models.Bus, bool)
	}
	RequestID string
	Loader    func(bookingNumber string) (ticketDocData, error)
}

type ticketDocData struct {
	Booking models.Booking
	Journey models.Journey
	BusCode string
}

// GenerateETicket returns the PDF and a download filename.
func (s DocsService) GenerateETicket(bookingNumber string) ([]byte, string, error) {
	data, err := s.loadTicketDocData(bookingNumber)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "booking="+bookingNumber)
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketDocData(bookingNumber string) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingNumber)
	}
	b, ok := s.Reservations.GetBookingByNumber(bookingNumber)
	if !ok {
		return ticketDocData{}, domain.NotFoundError{Resource: "booking"}
	}
	j, ok := s.Journeys.Get(b.JourneyID)
	if !ok {
		return ticketDocData{}, domain.NotFoundError{Resource: "journey"}
	}
	out := ticketDocData{Booking: b, Journey: j}
	if s.Buses != nil {
		if bus, ok := s.Buses.Bus(j.BusID); ok {
			out.BusCode = bus.Code
		}
	}
	return out, nil
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	b, j := d.Booking, d.Journey
	arrival := j.DepartureTime.Add(domain.TransitTime)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger      : %s", safe(b.PassengerName, "-")),
		fmt.Sprintf("Phone          : %s", safe(b.PassengerPhone, "-")),
		fmt.Sprintf("Seat           : %s", safe(b.SeatLabel, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(b.FromStop, "-"), safe(b.ToStop, "-")),
		fmt.Sprintf("Journey        : %s (%s)", safe(j.JourneyNumber, "-"), safe(j.Direction, "-")),
		fmt.Sprintf("Bus            : %s", safe(d.BusCode, "-")),
		fmt.Sprintf("Departure      : %s", utils.FormatDateTime(j.DepartureTime)),
		fmt.Sprintf("Arrival        : %s", utils.FormatDateTime(arrival)),
		fmt.Sprintf("Fare           : %s", utils.FormatMoney(b.Fare)),
		fmt.Sprintf("Status         : %s", safe(string(b.Status), "-")),
		fmt.Sprintf("Booking Ref    : %s", safe(b.BookingNumber, "-")),
		fmt.Sprintf("Ticket Code    : TCK-%d-%s", j.ID, safeFilenamePart(b.SeatLabel)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Valid for one passenger on one seat. Please show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", safeFilenamePart(b.BookingNumber), safeFilenamePart(b.PassengerName+"_"+b.SeatLabel))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
