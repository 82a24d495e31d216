package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"busticket/internal/domain"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr            string
	GinMode            string
	DBDSN              string
	ScheduleFile       string
	HoldTTL            time.Duration
	HoldSweepInterval  time.Duration
	HoldOnOffer        bool
	BookingHorizonDays int
	OfferTokenSecret   string
	CORSAllowedOrigins []string
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads an optional .env file and then the process environment.
// Malformed values fall back to their defaults with a warning.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to load .env: %v", err)
	}
	return envFrom(os.Getenv)
}

func envFrom(getenv func(string) string) Env {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	appAddr := get("APP_ADDR")
	if appAddr == "" {
		appAddr = ":8080"
	}

	origins := defaultCORSOrigins
	if raw := get("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = nil
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            get("GIN_MODE"),
		DBDSN:              get("DB_DSN"),
		ScheduleFile:       get("SCHEDULE_FILE"),
		HoldTTL:            durationOr("HOLD_TTL", get("HOLD_TTL"), domain.DefaultHoldTTL),
		HoldSweepInterval:  durationOr("HOLD_SWEEP_INTERVAL", get("HOLD_SWEEP_INTERVAL"), time.Minute),
		HoldOnOffer:        boolOr("HOLD_ON_OFFER", get("HOLD_ON_OFFER"), true),
		BookingHorizonDays: intOr("BOOKING_HORIZON_DAYS", get("BOOKING_HORIZON_DAYS"), domain.DefaultBookingHorizonDays),
		OfferTokenSecret:   get("OFFER_TOKEN_SECRET"),
		CORSAllowedOrigins: origins,
	}
}

func durationOr(key, raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

func intOr(key, raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("warning: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func boolOr(key, raw string, def bool) bool {
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("warning: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return b
}
