package model

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/bookledger/library-api/internal/apperr"
)

// emailPattern mirrors the CHECK constraint on readers.email.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type Reader struct {
	ReaderID  int64  `gorm:"primaryKey;autoIncrement" json:"reader_id"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null;uniqueIndex:uq_readers_email" json:"email"`
	Books     []Book `gorm:"many2many:book_readers;constraint:OnDelete:CASCADE" json:"books"`
}

func (Reader) TableName() string {
	return "readers"
}

// BeforeSave re-checks the email format at the persistence layer. The
// request schema already rejects malformed addresses; this hook keeps the
// invariant when rows are written through any other path.
func (r *Reader) BeforeSave(tx *gorm.DB) error {
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("%w: invalid email address", apperr.ErrConflict)
	}
	return nil
}

// BookReader is the join row linking a borrowed book to its reader.
// Both foreign keys cascade on delete.
type BookReader struct {
	BookID   int64 `gorm:"primaryKey" json:"book_id"`
	ReaderID int64 `gorm:"primaryKey" json:"reader_id"`
}

func (BookReader) TableName() string {
	return "book_readers"
}
