// Package books provides database operations for catalog book records.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	books, err := repo.ListBooks("крісті", 0)
package books

import (
	"strings"

	"gorm.io/gorm"

	"knyharnia/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns books ordered by creation time, newest first. A non-empty
// query restricts to books whose title or author contains it
// case-insensitively; a non-zero genreID restricts to that genre. Both
// filters combine with AND.
//
// The substring match runs in Go: SQLite's LIKE only case-folds ASCII and
// the catalog is Cyrillic.
func (r *Repository) ListBooks(query string, genreID uint) ([]entities.Book, error) {
	q := r.db.Preload("Genre").Order("created_at DESC, id DESC")
	if genreID != 0 {
		q = q.Where("genre_id = ?", genreID)
	}

	var books []entities.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return books, nil
	}

	needle := strings.ToLower(query)
	matched := make([]entities.Book, 0, len(books))
	for _, book := range books {
		if strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) {
			matched = append(matched, book)
		}
	}
	return matched, nil
}

// GetBookByID retrieves a single book with its genre.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Genre").First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook persists a new book record.
func (r *Repository) CreateBook(book *entities.Book) error {
	return r.db.Create(book).Error
}

// DeleteBook hard-deletes a book and its favourite/read join rows in one
// transaction so no dangling pairs survive.
func (r *Repository) DeleteBook(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&book).Association("FavouritedBy").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&book).Association("ReadBy").Clear(); err != nil {
			return err
		}
		return tx.Delete(&book).Error
	})
}
