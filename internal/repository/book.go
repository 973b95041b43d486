package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bookledger/library-api/internal/apperr"
	"github.com/bookledger/library-api/internal/model"
)

// BookChanges carries the fields of a partial update; nil means leave
// the column untouched. AuthorID stays a nullable column, so supplying
// it always overwrites the reference.
type BookChanges struct {
	Title           *string
	PublicationYear *time.Time
	Category        *model.Category
	AuthorID        *int64
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, page, limit int) (Page[model.Book], error)
	Update(ctx context.Context, id int64, changes BookChanges) (*model.Book, error)
	Delete(ctx context.Context, id int64) (*model.Book, error)
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return apperr.FromStore(err)
	}
	return nil
}

// FindByID returns the row as stored; the author is referenced by id
// only, never embedded.
func (r *GormBookRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "book_id = ?", id).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &book, nil
}

func (r *GormBookRepository) List(ctx context.Context, page, limit int) (Page[model.Book], error) {
	var (
		books []model.Book
		total int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Book{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.
			Order("book_id").
			Offset(offsetFor(page, limit)).
			Limit(limit).
			Find(&books).Error
	})
	if err != nil {
		return Page[model.Book]{}, apperr.FromStore(err)
	}

	return NewPage(books, page, limit, total), nil
}

func (r *GormBookRepository) Update(ctx context.Context, id int64, changes BookChanges) (*model.Book, error) {
	var book model.Book

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, "book_id = ?", id).Error; err != nil {
			return err
		}

		if changes.Title != nil {
			book.Title = *changes.Title
		}
		if changes.PublicationYear != nil {
			book.PublicationYear = *changes.PublicationYear
		}
		if changes.Category != nil {
			book.Category = *changes.Category
		}
		if changes.AuthorID != nil {
			book.AuthorID = changes.AuthorID
		}

		return tx.Save(&book).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &book, nil
}

// Delete returns the row's last state. Association rows cascade at the
// database level.
func (r *GormBookRepository) Delete(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, "book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Book{}, "book_id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &book, nil
}
