package entities

import "time"

// User is a registered account. Favourites and Read are independent
// many-to-many relations to Book; removing a user detaches its join rows
// without touching the books themselves.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	Favourites []Book `gorm:"many2many:favorite_books;constraint:OnDelete:CASCADE" json:"-"`
	Read       []Book `gorm:"many2many:read_books;constraint:OnDelete:CASCADE" json:"-"`
}

// Genre groups books. Genres are created by the seed only and are never
// deleted in-app.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:80;not null" json:"name"`

	Books []Book `gorm:"foreignKey:GenreID" json:"books,omitempty"`
}

// Book is a catalog record. GenreID is nullable; a book may exist without a
// genre even though the add-book form always requires one.
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Author      string    `gorm:"size:120;not null" json:"author"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CoverURL    string    `gorm:"size:255" json:"cover_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	GenreID *uint  `gorm:"index" json:"genre_id,omitempty"`
	Genre   *Genre `gorm:"foreignKey:GenreID" json:"genre,omitempty"`

	FavouritedBy []User `gorm:"many2many:favorite_books;constraint:OnDelete:CASCADE" json:"-"`
	ReadBy       []User `gorm:"many2many:read_books;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}
