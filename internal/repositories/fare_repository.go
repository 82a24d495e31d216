package repositories

import (
	"fmt"

	intdb "busticket/internal/db"

	"github.com/jmoiron/sqlx"
)

const fareTable = "bus_fares"

// FareRow is one row of bus_fares. Stops are referenced by code.
type FareRow struct {
	FromStop string `db:"from_stop"`
	ToStop   string `db:"to_stop"`
	Price    int64  `db:"price"`
}

// FareRepository reads fare overrides from MySQL.
type FareRepository struct {
	DB *sqlx.DB
}

func NewFareRepository(db *sqlx.DB) FareRepository {
	return FareRepository{DB: db}
}

// LoadFares returns every row of bus_fares, or nothing when the table does
// not exist.
func (r FareRepository) LoadFares() ([]FareRow, error) {
	if r.DB == nil || !intdb.HasTable(r.DB, fareTable) {
		return nil, nil
	}
	rows := []FareRow{}
	if err := r.DB.Select(&rows, "SELECT from_stop, to_stop, price FROM "+fareTable+" ORDER BY from_stop, to_stop"); err != nil {
		return nil, fmt.Errorf("load fares: %w", err)
	}
	return rows, nil
}
