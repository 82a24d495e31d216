package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	intdb "busticket/internal/db"
	"busticket/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

const ledgerTable = "booking_ledger"

// BookingLedger appends committed bookings to booking_ledger. The table is
// an audit trail only; nothing is ever read back into the inventory.
type BookingLedger struct {
	DB *sql.DB

	mu    sync.Mutex
	ready bool
}

func NewBookingLedger(db *sql.DB) *BookingLedger {
	return &BookingLedger{DB: db}
}

// ensureTable creates the table on first use. A failed attempt leaves the
// ledger unready so the next Record tries again.
func (l *BookingLedger) ensureTable(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ready {
		return nil
	}
	if intdb.HasTable(l.DB, ledgerTable) {
		l.ready = true
		return nil
	}

	// The DDL outlives the request that happens to trigger it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := l.DB.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS booking_ledger (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				booking_number VARCHAR(64) NOT NULL UNIQUE,
				journey_id BIGINT NOT NULL,
				seat_number VARCHAR(8) NOT NULL,
				from_stop VARCHAR(16) NOT NULL,
				to_stop VARCHAR(16) NOT NULL,
				passenger_name VARCHAR(255) NOT NULL,
				passenger_phone VARCHAR(32) NOT NULL,
				passenger_email VARCHAR(255) NULL,
				fare BIGINT NOT NULL,
				status VARCHAR(16) NOT NULL,
				booked_at DATETIME NOT NULL,
				travel_date DATETIME NOT NULL
			)`); err != nil {
		return err
	}
	l.ready = true
	return nil
}

// Record inserts the booking. A duplicate booking number is treated as
// already recorded.
func (l *BookingLedger) Record(ctx context.Context, b models.Booking) error {
	if l == nil || l.DB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := l.ensureTable(ctx); err != nil {
		return fmt.Errorf("ensure %s: %w", ledgerTable, err)
	}
	_, err := l.DB.ExecContext(ctx, `
		INSERT INTO booking_ledger
			(booking_number, journey_id, seat_number, from_stop, to_stop,
			 passenger_name, passenger_phone, passenger_email, fare, status, booked_at, travel_date)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.BookingNumber, b.JourneyID, b.SeatLabel, b.FromStop, b.ToStop,
		b.PassengerName, b.PassengerPhone, intdb.NullIfEmpty(b.PassengerEmail),
		b.Fare, string(b.Status), b.BookingTime, b.TravelDate,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return nil
		}
		return fmt.Errorf("record booking %s: %w", b.BookingNumber, err)
	}
	return nil
}
