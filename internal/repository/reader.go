package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookledger/library-api/internal/apperr"
	"github.com/bookledger/library-api/internal/model"
)

// ReaderChanges carries the fields of a partial update; nil means leave
// the column untouched.
type ReaderChanges struct {
	FirstName *string
	LastName  *string
	Email     *string
}

type ReaderRepository interface {
	Create(ctx context.Context, reader *model.Reader) error
	FindByID(ctx context.Context, id int64) (*model.Reader, error)
	List(ctx context.Context, page, limit int) (Page[model.Reader], error)
	Update(ctx context.Context, id int64, changes ReaderChanges) (*model.Reader, error)
	Delete(ctx context.Context, id int64) (*model.Reader, error)
	AddBook(ctx context.Context, readerID, bookID int64) (*model.Reader, error)
	RemoveBook(ctx context.Context, readerID, bookID int64) (*model.Reader, error)
}

type GormReaderRepository struct {
	db *gorm.DB
}

func NewGormReaderRepository(db *gorm.DB) *GormReaderRepository {
	return &GormReaderRepository{db: db}
}

func (r *GormReaderRepository) Create(ctx context.Context, reader *model.Reader) error {
	if err := r.db.WithContext(ctx).Create(reader).Error; err != nil {
		return apperr.FromStore(err)
	}
	return nil
}

// FindByID eagerly loads the reader's current book list.
func (r *GormReaderRepository) FindByID(ctx context.Context, id int64) (*model.Reader, error) {
	var reader model.Reader
	if err := r.db.WithContext(ctx).Preload("Books").First(&reader, "reader_id = ?", id).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &reader, nil
}

// List returns the lighter projection: no book lists are loaded for a
// page of readers.
func (r *GormReaderRepository) List(ctx context.Context, page, limit int) (Page[model.Reader], error) {
	var (
		readers []model.Reader
		total   int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Reader{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.
			Order("reader_id").
			Offset(offsetFor(page, limit)).
			Limit(limit).
			Find(&readers).Error
	})
	if err != nil {
		return Page[model.Reader]{}, apperr.FromStore(err)
	}

	return NewPage(readers, page, limit, total), nil
}

func (r *GormReaderRepository) Update(ctx context.Context, id int64, changes ReaderChanges) (*model.Reader, error) {
	var reader model.Reader

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reader, "reader_id = ?", id).Error; err != nil {
			return err
		}

		if changes.FirstName != nil {
			reader.FirstName = *changes.FirstName
		}
		if changes.LastName != nil {
			reader.LastName = *changes.LastName
		}
		if changes.Email != nil {
			reader.Email = *changes.Email
		}

		if err := tx.Save(&reader).Error; err != nil {
			return err
		}

		return tx.Preload("Books").First(&reader, "reader_id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &reader, nil
}

// Delete returns the row's last state, book list included. Association
// rows cascade at the database level.
func (r *GormReaderRepository) Delete(ctx context.Context, id int64) (*model.Reader, error) {
	var reader model.Reader

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Books").First(&reader, "reader_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Reader{}, "reader_id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &reader, nil
}

// AddBook links a book to the reader. A duplicate pair or an unknown
// book surfaces as a constraint violation; a missing reader as not found.
func (r *GormReaderRepository) AddBook(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
	var reader model.Reader

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reader, "reader_id = ?", readerID).Error; err != nil {
			return err
		}

		link := model.BookReader{BookID: bookID, ReaderID: readerID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		return tx.Preload("Books").First(&reader, "reader_id = ?", readerID).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &reader, nil
}

// RemoveBook unlinks a book from the reader. Removing a pair that does
// not exist is not an error; the reader's current state is returned
// either way.
func (r *GormReaderRepository) RemoveBook(ctx context.Context, readerID, bookID int64) (*model.Reader, error) {
	var reader model.Reader

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reader, "reader_id = ?", readerID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&model.BookReader{}, "book_id = ? AND reader_id = ?", bookID, readerID).Error; err != nil {
			return err
		}

		return tx.Preload("Books").First(&reader, "reader_id = ?", readerID).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &reader, nil
}
