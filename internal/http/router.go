package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"knyharnia/internal/auth"
	"knyharnia/internal/database"
	"knyharnia/internal/forms"
)

// RouterConfig carries all router dependencies, keeping them explicitly
// constructed and injectable instead of process-wide globals.
type RouterConfig struct {
	Database       *database.Database
	BookStore      BookStore
	GenreStore     GenreStore
	ShelfStore     ShelfStore
	UserDirectory  forms.UserDirectory
	Validator      *forms.Validator
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	TemplatesPath  string
	StaticPath     string
	CSRFSecret     []byte
	SecureCookies  bool
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is layered on
	// top of the CSRF request replacement.
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.LoadUser())

	tmpl := template.Must(template.ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	guard := cfg.AuthMiddleware.RequireAuth()

	authController := auth.NewController(cfg.AuthService, cfg.SessionManager, cfg.Validator, cfg.UserDirectory)
	authController.RegisterRoutes(router, guard)

	booksController := NewBooksController(cfg.BookStore, cfg.GenreStore, cfg.Validator)
	shelvesController := NewShelvesController(cfg.ShelfStore)
	health := NewHealthController(cfg.Database, cfg.Version)

	router.GET("/", booksController.Index)
	router.GET("/books/:id", booksController.Detail)
	router.GET("/books/add", guard, booksController.AddBookPage)
	router.POST("/books/add", guard, booksController.AddBook)
	router.POST("/books/:id/delete", guard, booksController.DeleteBook)

	router.POST("/books/:id/favorite", guard, shelvesController.ToggleFavourite)
	router.POST("/books/:id/read", guard, shelvesController.ToggleRead)
	router.GET("/favorites", guard, shelvesController.Favourites)

	router.GET("/health", health.Status)

	return router
}
