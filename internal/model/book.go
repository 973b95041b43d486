package model

import "time"

// Category is the closed set of book categories the service accepts.
type Category string

const (
	CategoryFiction    Category = "Fiction"
	CategoryNonFiction Category = "Non-fiction"
	CategoryScience    Category = "Science"
	CategoryHistory    Category = "History"
	CategoryFantasy    Category = "Fantasy"
)

type Book struct {
	BookID          int64     `gorm:"primaryKey;autoIncrement" json:"book_id"`
	Title           string    `gorm:"size:50;not null;uniqueIndex:uq_books_title" json:"title"`
	PublicationYear time.Time `gorm:"type:date;not null" json:"publication_year"`
	Category        Category  `gorm:"type:varchar(20);not null" json:"category"`
	AuthorID        *int64    `json:"author_id"`
	Readers         []Reader  `gorm:"many2many:book_readers;constraint:OnDelete:CASCADE" json:"-"`
}

func (Book) TableName() string {
	return "books"
}
