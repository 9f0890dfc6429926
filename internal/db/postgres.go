package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stockstores-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const uniqueViolation = "23505"

// OpenPostgres connects to dsn and pings it within timeout.
func OpenPostgres(ctx context.Context, dsn string, timeout time.Duration) (*sql.DB, error) {
	return openWithDriver(ctx, "postgres", dsn, timeout)
}

func openWithDriver(ctx context.Context, driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.L().Info("database connection established")
	return conn, nil
}

// IsUniqueViolation reports whether err is a postgres unique constraint error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id can identify a row. Ids that are not uuids
// can never match and are treated as missing records.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
