package books

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"knyharnia/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Genre{}, &entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func seedGenres(t *testing.T, db *gorm.DB) (detective, fantasy entities.Genre) {
	t.Helper()
	detective = entities.Genre{Name: "Детектив"}
	fantasy = entities.Genre{Name: "Фентезі"}
	require.NoError(t, db.Create(&detective).Error)
	require.NoError(t, db.Create(&fantasy).Error)
	return detective, fantasy
}

func createBook(t *testing.T, repo *Repository, title, author string, genreID uint, createdAt time.Time) entities.Book {
	t.Helper()
	book := entities.Book{
		Title:       title,
		Author:      author,
		Description: "опис",
		GenreID:     &genreID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, repo.CreateBook(&book))
	return book
}

func TestRepository_ListBooks_NewestFirst(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, _ := seedGenres(t, db)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	createBook(t, repo, "Перша", "Автор", detective.ID, base)
	createBook(t, repo, "Друга", "Автор", detective.ID, base.Add(time.Hour))
	createBook(t, repo, "Третя", "Автор", detective.ID, base.Add(2*time.Hour))

	books, err := repo.ListBooks("", 0)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Третя", books[0].Title)
	assert.Equal(t, "Друга", books[1].Title)
	assert.Equal(t, "Перша", books[2].Title)
}

func TestRepository_ListBooks_SearchMatchesTitleOrAuthor(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, fantasy := seedGenres(t, db)

	now := time.Now()
	createBook(t, repo, "Вбивство у «Східному експресі»", "Аґата Крісті", detective.ID, now)
	createBook(t, repo, "Гаррі Поттер і філософський камінь", "Дж. К. Ролінґ", fantasy.ID, now)
	createBook(t, repo, "Крісті та інші історії", "Невідомий", fantasy.ID, now)

	books, err := repo.ListBooks("Крісті", 0)
	require.NoError(t, err)
	require.Len(t, books, 2)
	for _, b := range books {
		matches := strings.Contains(b.Title, "Крісті") || strings.Contains(b.Author, "Крісті")
		assert.True(t, matches, "unexpected match %q / %q", b.Title, b.Author)
	}
}

func TestRepository_ListBooks_SearchIsCaseInsensitive(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, _ := seedGenres(t, db)

	createBook(t, repo, "Вбивство у «Східному експресі»", "Аґата Крісті", detective.ID, time.Now())

	// Cyrillic case folding, lower and upper variants of the same query
	for _, query := range []string{"крісті", "КРІСТІ", "Крісті"} {
		books, err := repo.ListBooks(query, 0)
		require.NoError(t, err)
		assert.Len(t, books, 1, "query %q", query)
	}
}

func TestRepository_ListBooks_GenreFilter(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, fantasy := seedGenres(t, db)

	now := time.Now()
	createBook(t, repo, "Хірург", "Тесс Ґеррітсен", detective.ID, now)
	createBook(t, repo, "Гаррі Поттер і філософський камінь", "Дж. К. Ролінґ", fantasy.ID, now)

	books, err := repo.ListBooks("", detective.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Хірург", books[0].Title)
}

func TestRepository_ListBooks_CombinedFiltersIntersect(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, fantasy := seedGenres(t, db)

	now := time.Now()
	createBook(t, repo, "Хірург", "Тесс Ґеррітсен", detective.ID, now)
	createBook(t, repo, "Асистент", "Тесс Ґеррітсен", detective.ID, now)
	createBook(t, repo, "Ґеррітсен: біографія", "Інший Автор", fantasy.ID, now)

	books, err := repo.ListBooks("ґеррітсен", detective.ID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	for _, b := range books {
		assert.Equal(t, detective.ID, *b.GenreID)
	}
}

func TestRepository_GetBookByID(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, _ := seedGenres(t, db)

	created := createBook(t, repo, "Хірург", "Тесс Ґеррітсен", detective.ID, time.Now())

	book, err := repo.GetBookByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Хірург", book.Title)
	require.NotNil(t, book.Genre)
	assert.Equal(t, "Детектив", book.Genre.Name)
}

func TestRepository_GetBookByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetBookByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteBook_CascadesJoinRows(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	detective, _ := seedGenres(t, db)

	book := createBook(t, repo, "Хірург", "Тесс Ґеррітсен", detective.ID, time.Now())

	user := entities.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&user).Association("Favourites").Append(&book))
	require.NoError(t, db.Model(&user).Association("Read").Append(&book))

	require.NoError(t, repo.DeleteBook(book.ID))

	_, err := repo.GetBookByID(book.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var favRows, readRows int64
	require.NoError(t, db.Table("favorite_books").Where("book_id = ?", book.ID).Count(&favRows).Error)
	require.NoError(t, db.Table("read_books").Where("book_id = ?", book.ID).Count(&readRows).Error)
	assert.Zero(t, favRows)
	assert.Zero(t, readRows)
}

func TestRepository_DeleteBook_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.DeleteBook(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
