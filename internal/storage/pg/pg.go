// Package pg implements the durable record store on PostgreSQL.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"
	"github.com/threadly-dev/threadly/internal/config"
	internal_errors "github.com/threadly-dev/threadly/internal/errors"
	"github.com/threadly-dev/threadly/internal/logger"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so the core query logic
// can run in either transactional or non-transactional contexts.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db, cfg}, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port,
		cfg.Private.Pg.User, cfg.Private.Pg.Password,
		cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable, for readiness probes.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx executes fn within a transaction. The deferred Rollback is a no-op
// once the transaction has been committed.
func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// errTxConflict marks a transient collision with a concurrent transaction
// (e.g. a duplicate insert that lost the race). withTxRetry re-reads and
// reapplies; everything else surfaces to the caller unchanged.
var errTxConflict = errors.New("transaction conflict")

const maxTxAttempts = 3

func isRetryable(err error) bool {
	if errors.Is(err, errTxConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// withTxRetry is withTx for the read-then-write operations that may collide
// under concurrency (ordinal assignment, renumbering, reaction toggling).
func (s *Storage) withTxRetry(ctx context.Context, fn func(*sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.withTx(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		logger.Log.Warn("retrying conflicting transaction", "attempt", attempt, "error", err)
	}
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Operation conflicted with concurrent requests, please retry",
		StatusCode: http.StatusServiceUnavailable,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// utcNow returns the current instant truncated the way postgres stores it.
// All persisted timestamps go through this so the ban-expiry comparison and
// the per-thread ordering never mix time representations.
func utcNow() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}
