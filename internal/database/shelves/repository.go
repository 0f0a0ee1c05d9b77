// Package shelves manages the two independent user/book join relations:
// favourite_books and read_books. A (user, book) pair exists at most once in
// each relation and is flipped by presence, not by a flag column. Each
// direction is queried explicitly; nothing is cached on the entities.
package shelves

import (
	"gorm.io/gorm"

	"knyharnia/internal/entities"
)

// Shelf names the join relation an operation works on.
type Shelf string

const (
	ShelfFavourites Shelf = "favourites"
	ShelfRead       Shelf = "read"
)

func (s Shelf) association() string {
	if s == ShelfRead {
		return "Read"
	}
	return "Favourites"
}

func (s Shelf) joinTable() string {
	if s == ShelfRead {
		return "read_books"
	}
	return "favorite_books"
}

// Repository handles favourite/read relation operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shelves repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle adds the (user, book) pair to the shelf if absent, removes it if
// present. Returns true when the pair was added. Toggling twice restores the
// original state.
func (r *Repository) Toggle(shelf Shelf, userID, bookID uint) (bool, error) {
	var user entities.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return false, err
	}
	var book entities.Book
	if err := r.db.First(&book, bookID).Error; err != nil {
		return false, err
	}

	onShelf, err := r.Contains(shelf, userID, bookID)
	if err != nil {
		return false, err
	}

	assoc := r.db.Model(&user).Association(shelf.association())
	if onShelf {
		return false, assoc.Delete(&book)
	}
	return true, assoc.Append(&book)
}

// Contains reports whether the (user, book) pair is on the shelf.
func (r *Repository) Contains(shelf Shelf, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.Table(shelf.joinTable()).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

// ListBooks returns the books on a user's shelf, newest catalog entries
// first.
func (r *Repository) ListBooks(shelf Shelf, userID uint) ([]entities.Book, error) {
	var user entities.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	var books []entities.Book
	err := r.db.Model(&user).
		Order("books.created_at DESC, books.id DESC").
		Association(shelf.association()).
		Find(&books)
	if err != nil {
		return nil, err
	}
	return books, nil
}
