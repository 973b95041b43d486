package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/bookledger/library-api/internal/apperr"
	"github.com/bookledger/library-api/internal/model"
)

// AuthorChanges carries the fields of a partial update; nil means leave
// the column untouched.
type AuthorChanges struct {
	FirstName   *string
	LastName    *string
	Nationality *model.Nationality
}

type AuthorRepository interface {
	Create(ctx context.Context, author *model.Author) error
	FindByID(ctx context.Context, id int64) (*model.Author, error)
	List(ctx context.Context, page, limit int) (Page[model.Author], error)
	Update(ctx context.Context, id int64, changes AuthorChanges) (*model.Author, error)
	Delete(ctx context.Context, id int64) (*model.Author, error)
}

type GormAuthorRepository struct {
	db *gorm.DB
}

func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

func (r *GormAuthorRepository) Create(ctx context.Context, author *model.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return apperr.FromStore(err)
	}
	return nil
}

func (r *GormAuthorRepository) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	var author model.Author
	if err := r.db.WithContext(ctx).First(&author, "author_id = ?", id).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &author, nil
}

func (r *GormAuthorRepository) List(ctx context.Context, page, limit int) (Page[model.Author], error) {
	var (
		authors []model.Author
		total   int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Author{}).Count(&total).Error; err != nil {
			return err
		}
		return tx.
			Order("author_id").
			Offset(offsetFor(page, limit)).
			Limit(limit).
			Find(&authors).Error
	})
	if err != nil {
		return Page[model.Author]{}, apperr.FromStore(err)
	}

	return NewPage(authors, page, limit, total), nil
}

func (r *GormAuthorRepository) Update(ctx context.Context, id int64, changes AuthorChanges) (*model.Author, error) {
	var author model.Author

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, "author_id = ?", id).Error; err != nil {
			return err
		}

		if changes.FirstName != nil {
			author.FirstName = *changes.FirstName
		}
		if changes.LastName != nil {
			author.LastName = *changes.LastName
		}
		if changes.Nationality != nil {
			author.Nationality = *changes.Nationality
		}

		return tx.Save(&author).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &author, nil
}

// Delete returns the row's last state. The database sets author_id to
// null on the author's books.
func (r *GormAuthorRepository) Delete(ctx context.Context, id int64) (*model.Author, error) {
	var author model.Author

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, "author_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Author{}, "author_id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return &author, nil
}
