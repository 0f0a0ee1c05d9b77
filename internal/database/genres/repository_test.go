package genres

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"knyharnia/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_genres_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Genre{}, &entities.Book{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewRepository(db), db, cleanup
}

func TestRepository_GetAllGenres_OrderedByName(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, name := range []string{"Фентезі", "Детектив", "Роман"} {
		require.NoError(t, db.Create(&entities.Genre{Name: name}).Error)
	}

	genres, err := repo.GetAllGenres()
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Детектив", genres[0].Name)
	assert.Equal(t, "Роман", genres[1].Name)
	assert.Equal(t, "Фентезі", genres[2].Name)
}

func TestRepository_GenreExists(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	genre := entities.Genre{Name: "Роман"}
	require.NoError(t, db.Create(&genre).Error)

	exists, err := repo.GenreExists(genre.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.GenreExists(999)
	require.NoError(t, err)
	assert.False(t, exists)
}
