package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAvailabilityCommandRendersOffers(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/reservation/availability" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"AVAILABLE","code":200,"data":{"journeys":[
			{"journey_id":7,"journey_number":"JN-104","origin":"A","destination":"D",
			 "departure_time":"2026-10-17T08:00:00Z","arrival_time":"2026-10-17T10:30:00Z",
			 "available_seats":40,"fare_per_passenger":150,"total_fare":300}
		],"passenger_count":2,"available_seats_count":40}}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "--server", srv.URL, "availability", "--from", "A", "--to", "D", "--pax", "2", "--date", "2026-10-17")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !strings.Contains(gotQuery, "passenger_count=2") || !strings.Contains(gotQuery, "journey_date=2026-10-17") {
		t.Fatalf("query = %s", gotQuery)
	}
	if !strings.Contains(out, "JN-104") || !strings.Contains(out, "A > D") {
		t.Fatalf("output missing journey:\n%s", out)
	}
}

func TestAvailabilityCommandNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	out, err := runCLI(t, "--server", srv.URL, "availability", "--from", "A", "--to", "B")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if !strings.Contains(out, "no journeys available") {
		t.Fatalf("output = %s", out)
	}
}

func TestBookingCommandSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"ERROR","code":404,"message":"Booking not found","error_details":{"error_code":"BOOKING_NOT_FOUND"}}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "--server", srv.URL, "booking", "--number", "RS1")
	if err == nil || !strings.Contains(err.Error(), "BOOKING_NOT_FOUND") {
		t.Fatalf("err = %v", err)
	}
}

func TestSeatMapRendering(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"SUCCESS","code":200,"data":{"journey_id":1,"seats":[
			{"seat_number":"1A","row":1,"column":"A","state":"BOOKED"},
			{"seat_number":"1B","row":1,"column":"B","state":"HELD"},
			{"seat_number":"1C","row":1,"column":"C","state":"FREE"},
			{"seat_number":"1D","row":1,"column":"D","state":"FREE"}
		]}}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "--server", srv.URL, "seats", "--journey", "1")
	if err != nil {
		t.Fatalf("seats: %v", err)
	}
	for _, want := range []string{"XX", "1b", "1C", "1D"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil || !strings.Contains(out, "busctl dev") {
		t.Fatalf("version = %q err=%v", out, err)
	}
}
