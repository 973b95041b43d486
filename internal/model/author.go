package model

// Nationality is the closed set of author nationalities the service accepts.
type Nationality string

const (
	NationalityRussian  Nationality = "Russian"
	NationalityAmerican Nationality = "American"
	NationalityBritish  Nationality = "British"
	NationalityFrench   Nationality = "French"
	NationalityGerman   Nationality = "German"
)

// Author owns zero or more books. Deleting an author does not delete its
// books; books.author_id is set to null instead.
type Author struct {
	AuthorID    int64       `gorm:"primaryKey;autoIncrement" json:"author_id"`
	FirstName   string      `gorm:"size:50;not null" json:"first_name"`
	LastName    string      `gorm:"size:50;not null" json:"last_name"`
	Nationality Nationality `gorm:"type:varchar(20);not null" json:"nationality"`
	Books       []Book      `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}
