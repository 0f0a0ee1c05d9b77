package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"knyharnia/internal/entities"
	"knyharnia/internal/forms"
)

// BookStore defines database operations for catalog books.
type BookStore interface {
	ListBooks(query string, genreID uint) ([]entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	DeleteBook(id uint) error
}

// GenreStore defines the genre lookups the catalog pages need.
type GenreStore interface {
	GetAllGenres() ([]entities.Genre, error)
	GenreExists(id uint) (bool, error)
}

type BooksController struct {
	store     BookStore
	genres    GenreStore
	validator *forms.Validator
}

func NewBooksController(store BookStore, genres GenreStore, validator *forms.Validator) *BooksController {
	return &BooksController{
		store:     store,
		genres:    genres,
		validator: validator,
	}
}

// Index lists the catalog, newest first. `q` filters title/author by
// case-insensitive substring, `genre` by exact id; both combine with AND.
// GET /
func (bc *BooksController) Index(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	genreID := parseQueryID(c, "genre")

	books, err := bc.store.ListBooks(query, genreID)
	if err != nil {
		respondServerError(c, err, "list books")
		return
	}

	genres, err := bc.genres.GetAllGenres()
	if err != nil {
		respondServerError(c, err, "list genres")
		return
	}

	data := viewerData(c)
	data["Title"] = "Каталог"
	data["Books"] = books
	data["Genres"] = genres
	data["ActiveGenre"] = genreID
	data["Query"] = query
	c.HTML(http.StatusOK, "index", data)
}

// Detail shows one book. Absence is a distinct 404 outcome.
// GET /books/:id
func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		respondServerError(c, err, "get book")
		return
	}

	data := viewerData(c)
	data["Title"] = book.Title
	data["Book"] = book
	c.HTML(http.StatusOK, "book_detail", data)
}

// AddBookPage renders the add-book form with the live genre set.
// GET /books/add
func (bc *BooksController) AddBookPage(c *gin.Context) {
	genres, err := bc.genres.GetAllGenres()
	if err != nil {
		respondServerError(c, err, "list genres")
		return
	}

	bc.renderBookForm(c, forms.BookForm{}, forms.Errors{}, genres)
}

// AddBook handles the add-book form submission.
// POST /books/add
func (bc *BooksController) AddBook(c *gin.Context) {
	genreID, _ := strconv.ParseUint(c.PostForm("genre"), 10, 32)
	form := forms.BookForm{
		Title:       c.PostForm("title"),
		Author:      c.PostForm("author"),
		GenreID:     uint(genreID),
		CoverURL:    c.PostForm("cover_url"),
		Description: c.PostForm("description"),
	}

	errs, err := bc.validator.ValidateBook(form, bc.genres)
	if err != nil {
		respondServerError(c, err, "validate book")
		return
	}
	if errs.Any() {
		genres, gerr := bc.genres.GetAllGenres()
		if gerr != nil {
			respondServerError(c, gerr, "list genres")
			return
		}
		bc.renderBookForm(c, form, errs, genres)
		return
	}

	gid := form.GenreID
	book := &entities.Book{
		Title:       form.Title,
		Author:      form.Author,
		Description: form.Description,
		CoverURL:    form.CoverURL,
		GenreID:     &gid,
	}
	if err := bc.store.CreateBook(book); err != nil {
		respondServerError(c, err, "create book")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (bc *BooksController) renderBookForm(c *gin.Context, form forms.BookForm, errs forms.Errors, genres []entities.Genre) {
	data := viewerData(c)
	data["Title"] = "Додати книгу"
	data["Form"] = form
	data["Errors"] = errs
	data["Genres"] = genres
	c.HTML(http.StatusOK, "book_form", data)
}

// DeleteBook hard-deletes a book together with its favourite/read rows.
// The original applies no ownership check here - any authenticated user may
// delete any book - and that behaviour is preserved.
// POST /books/:id/delete
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.DeleteBook(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		respondServerError(c, err, "delete book")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
