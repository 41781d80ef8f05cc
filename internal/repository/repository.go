package repository

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// queryObserver receives query timings, typically the metrics service.
type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// statementBuilder returns a squirrel builder using the placeholder style of the driver.
func statementBuilder(db *sqlx.DB) sq.StatementBuilderType {
	if sqlx.BindType(db.DriverName()) == sqlx.DOLLAR {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func observe(obs queryObserver, label string, start time.Time) {
	if obs == nil {
		return
	}
	obs.ObserveDBQuery(label, time.Since(start))
}
