package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"knyharnia/internal/auth"
	"knyharnia/internal/database/shelves"
	"knyharnia/internal/entities"
)

// ShelfStore defines the favourite/read relation operations.
type ShelfStore interface {
	Toggle(shelf shelves.Shelf, userID, bookID uint) (bool, error)
	ListBooks(shelf shelves.Shelf, userID uint) ([]entities.Book, error)
}

type ShelvesController struct {
	store ShelfStore
}

func NewShelvesController(store ShelfStore) *ShelvesController {
	return &ShelvesController{store: store}
}

// ToggleFavourite flips the (user, book) favourite pair and returns to the
// referring page.
// POST /books/:id/favorite
func (sc *ShelvesController) ToggleFavourite(c *gin.Context) {
	sc.toggle(c, shelves.ShelfFavourites)
}

// ToggleRead flips the (user, book) read pair, independent of favourites.
// POST /books/:id/read
func (sc *ShelvesController) ToggleRead(c *gin.Context) {
	sc.toggle(c, shelves.ShelfRead)
}

func (sc *ShelvesController) toggle(c *gin.Context, shelf shelves.Shelf) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := sc.store.Toggle(shelf, auth.GetUserID(c), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		respondServerError(c, err, "toggle "+string(shelf))
		return
	}

	redirectBack(c)
}

// Favourites shows the current user's favourite and read books as two
// independent collections.
// GET /favorites
func (sc *ShelvesController) Favourites(c *gin.Context) {
	userID := auth.GetUserID(c)

	favourites, err := sc.store.ListBooks(shelves.ShelfFavourites, userID)
	if err != nil {
		respondServerError(c, err, "list favourites")
		return
	}

	read, err := sc.store.ListBooks(shelves.ShelfRead, userID)
	if err != nil {
		respondServerError(c, err, "list read")
		return
	}

	data := viewerData(c)
	data["Title"] = "Обране"
	data["Favourites"] = favourites
	data["Read"] = read
	c.HTML(http.StatusOK, "favorites", data)
}
