package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestFromStore_Nil(t *testing.T) {
	if got := FromStore(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestFromStore_TaxonomyPassesThrough(t *testing.T) {
	wrapped := fmt.Errorf("saving reader: %w", ErrConflict)
	if got := FromStore(wrapped); !errors.Is(got, ErrConflict) {
		t.Fatalf("expected ErrConflict preserved, got %v", got)
	}
	if got := FromStore(ErrNotFound); !errors.Is(got, ErrNotFound) {
		t.Fatalf("expected ErrNotFound preserved, got %v", got)
	}
}

func TestFromStore_GormSentinels(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrConflict},
		{"foreign key violated", gorm.ErrForeignKeyViolated, ErrConflict},
		{"check constraint violated", gorm.ErrCheckConstraintViolated, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromStore(tt.in); !errors.Is(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFromStore_PostgresCodes(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", ErrConflict},
		{"23503", ErrConflict},
		{"23514", ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &pgconn.PgError{Code: tt.code}
			if got := FromStore(err); !errors.Is(got, tt.want) {
				t.Errorf("code %s: expected %v, got %v", tt.code, tt.want, got)
			}
		})
	}
}

func TestFromStore_UnknownPostgresCodePassesThrough(t *testing.T) {
	err := &pgconn.PgError{Code: "42P01"}
	got := FromStore(err)
	if errors.Is(got, ErrConflict) || errors.Is(got, ErrNotFound) || errors.Is(got, ErrUnavailable) {
		t.Fatalf("expected the raw error back, got %v", got)
	}
}

func TestFromStore_ConnectionErrors(t *testing.T) {
	tests := []struct {
		name string
		in   error
	}{
		{"bad conn", driver.ErrBadConn},
		{"deadline exceeded", context.DeadlineExceeded},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromStore(tt.in); !errors.Is(got, ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", got)
			}
		})
	}
}

func TestFromStore_UnrecognizedReturnedUnchanged(t *testing.T) {
	err := errors.New("something else entirely")
	if got := FromStore(err); got != err {
		t.Fatalf("expected the same error back, got %v", got)
	}
}
