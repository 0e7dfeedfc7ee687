package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Sentinel errors surfaced to the service layer.
var (
	// ErrNotFound is returned when a direct lookup finds no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSnapshot is returned when a cashbook snapshot insert hits
	// the (snapshot_date, account_id) unique index. Two scheduler runs can
	// race past the existence check; the index is the backstop.
	ErrDuplicateSnapshot = errors.New("snapshot already exists")
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// toDate renders t as a plain yyyy-mm-dd string for DATE columns. Passing
// time.Time directly would go over the wire as timestamptz and get
// converted to a date via the session TimeZone, shifting rows across
// calendar days on non-UTC servers.
func toDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
