// Command busctl queries a running busticket server from the terminal.
package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"busticket/internal/domain/models"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var server string

	root := &cobra.Command{
		Use:          "busctl",
		Short:        "Bus ticketing CLI",
		Long:         `Check availability, take offers and look up bookings on a busticket server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&server, "server", envOr("BUSCTL_SERVER", "http://localhost:8080"), "busticket server base URL")
	api := func() *client { return newClient(server) }

	root.AddCommand(
		availabilityCmd(api),
		offerCmd(api),
		seatsCmd(api),
		bookingCmd(api),
		&cobra.Command{
			Use:   "version",
			Short: "Print the busctl version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "busctl "+version)
			},
		},
	)
	return root
}

func availabilityCmd(api func() *client) *cobra.Command {
	var (
		from, to, date string
		pax            int
	)
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "List journeys that can carry the party",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format(time.DateOnly)
			}
			q := url.Values{}
			q.Set("origin", from)
			q.Set("destination", to)
			q.Set("passenger_count", strconv.Itoa(pax))
			q.Set("journey_date", date)

			var data struct {
				Journeys []models.Offer `json:"journeys"`
			}
			found, err := api().get("/api/v1/reservation/availability", q, &data)
			if err != nil {
				return err
			}
			if !found || len(data.Journeys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no journeys available")
				return nil
			}
			renderOffers(cmd.OutOrStdout(), data.Journeys)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "origin stop code")
	cmd.Flags().StringVar(&to, "to", "", "destination stop code")
	cmd.Flags().IntVar(&pax, "pax", 1, "passenger count")
	cmd.Flags().StringVar(&date, "date", "", "journey date (YYYY-MM-DD), default today")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func offerCmd(api func() *client) *cobra.Command {
	var (
		journey  int64
		from, to string
		pax      int
	)
	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Take an offer on one journey, holding its free seats",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("origin", from)
			q.Set("destination", to)
			q.Set("passenger_count", strconv.Itoa(pax))

			var offer models.Offer
			if _, err := api().get(journeyPath(journey, "offer"), q, &offer); err != nil {
				return err
			}
			renderOffer(cmd.OutOrStdout(), offer)
			return nil
		},
	}
	cmd.Flags().Int64Var(&journey, "journey", 0, "journey id")
	cmd.Flags().StringVar(&from, "from", "", "origin stop code")
	cmd.Flags().StringVar(&to, "to", "", "destination stop code")
	cmd.Flags().IntVar(&pax, "pax", 1, "passenger count")
	_ = cmd.MarkFlagRequired("journey")
	return cmd
}

func seatsCmd(api func() *client) *cobra.Command {
	var journey int64
	cmd := &cobra.Command{
		Use:   "seats",
		Short: "Show the seat map of a journey",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data struct {
				Seats []models.SeatState `json:"seats"`
			}
			if _, err := api().get(journeyPath(journey, "seats"), nil, &data); err != nil {
				return err
			}
			renderSeatMap(cmd.OutOrStdout(), data.Seats)
			return nil
		},
	}
	cmd.Flags().Int64Var(&journey, "journey", 0, "journey id")
	_ = cmd.MarkFlagRequired("journey")
	return cmd
}

func bookingCmd(api func() *client) *cobra.Command {
	var number string
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Look up a booking by number",
		RunE: func(cmd *cobra.Command, args []string) error {
			var b models.Booking
			if _, err := api().get("/api/v1/reservation/bookings/"+url.PathEscape(number), nil, &b); err != nil {
				return err
			}
			renderBooking(cmd.OutOrStdout(), b)
			return nil
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "booking number")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}

func journeyPath(id int64, action string) string {
	return "/api/v1/reservation/journeys/" + strconv.FormatInt(id, 10) + "/" + action
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
