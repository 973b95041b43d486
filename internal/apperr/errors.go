// Package apperr defines the error taxonomy every layer above the store
// speaks: missing rows, broken constraints, and an unreachable database.
package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means no row matched the requested key.
	ErrNotFound = errors.New("object not found")

	// ErrConflict means a uniqueness or referential-integrity rule
	// rejected the write.
	ErrConflict = errors.New("operation violates a data constraint")

	// ErrUnavailable means the relational store could not be reached.
	ErrUnavailable = errors.New("database unavailable")
)

// FromStore translates driver and ORM errors into the service taxonomy.
// Errors already in the taxonomy pass through; anything unrecognized is
// returned unchanged for the caller to treat as internal.
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503", "23514":
			return ErrConflict
		}
	}

	if isConnectionError(err) {
		return ErrUnavailable
	}

	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
