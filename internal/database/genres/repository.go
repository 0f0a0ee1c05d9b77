// Package genres provides read access to the seeded genre list. There is no
// delete path: genres are created by the seed and referenced by books.
package genres

import (
	"gorm.io/gorm"

	"knyharnia/internal/entities"
)

// Repository handles genre database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new genres repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllGenres returns all genres ordered by name.
func (r *Repository) GetAllGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// GenreExists reports whether a genre with the given ID is known.
func (r *Repository) GenreExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Genre{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
