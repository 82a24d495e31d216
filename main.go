package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busticket/internal/clock"
	intconfig "busticket/internal/config"
	router "busticket/internal/http"
	h "busticket/internal/http/handlers"
	"busticket/internal/repositories"
	"busticket/internal/services"
	"busticket/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

var version = "dev"

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	clk := clock.Real()
	st := store.New()

	fares := services.FareService{Store: st, Clock: clk}
	journeys := services.JourneyService{Store: st}
	seats := services.SeatService{Store: st, Clock: clk, HoldTTL: env.HoldTTL}

	sched, err := intconfig.LoadSchedule(env.ScheduleFile)
	if err != nil {
		log.Fatalf("failed to load schedule: %v", err)
	}
	seeded, err := journeys.SeedSchedule(sched, fares, clk.Now(), env.BookingHorizonDays)
	if err != nil {
		log.Fatalf("failed to seed journeys: %v", err)
	}
	log.Printf("seeded %d journeys over %d days", len(seeded), env.BookingHorizonDays)

	db, err := intconfig.ConnectDB(env.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer intconfig.CloseDB(db)

	var ledger services.BookingRecorder
	if db != nil {
		applyFareOverrides(db, fares)
		ledger = repositories.NewBookingLedger(db)
	}

	tokens, err := services.NewOfferTokens(env.OfferTokenSecret, clk)
	if err != nil {
		log.Fatalf("failed to init offer tokens: %v", err)
	}

	api := &h.API{
		Store: st,
		Availability: services.AvailabilityService{
			Store:       st,
			Journeys:    journeys,
			Seats:       seats,
			Fares:       fares,
			Clock:       clk,
			HorizonDays: env.BookingHorizonDays,
			HoldOnOffer: env.HoldOnOffer,
			Tokens:      tokens,
		},
		Reservations: services.ReservationService{
			Store:    st,
			Journeys: journeys,
			Seats:    seats,
			Fares:    fares,
			Clock:    clk,
			Tokens:   tokens,
			Ledger:   ledger,
		},
		Seats:     seats,
		Fares:     fares,
		Journeys:  journeys,
		Version:   version,
		StartedAt: clk.Now(),
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go seats.RunHoldSweeper(ctx, env.HoldSweepInterval)

	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

// applyFareOverrides replaces seeded prices with rows from bus_fares.
func applyFareOverrides(db *sql.DB, fares services.FareService) {
	rows, err := repositories.NewFareRepository(sqlx.NewDb(db, "mysql")).LoadFares()
	if err != nil {
		log.Printf("warning: fare overrides not loaded: %v", err)
		return
	}
	for _, row := range rows {
		if _, err := fares.UpsertFare(row.FromStop, row.ToStop, row.Price); err != nil {
			log.Printf("warning: skip fare %s-%s: %v", row.FromStop, row.ToStop, err)
		}
	}
	if len(rows) > 0 {
		log.Printf("applied %d fare overrides", len(rows))
	}
}
