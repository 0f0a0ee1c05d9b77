package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"knyharnia/internal/forms"
)

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Reject protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// SanitizeRedirectPath returns a safe redirect path, defaulting to "/" if
// invalid.
func SanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// Controller handles registration, login and logout.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	validator      *forms.Validator
	users          forms.UserDirectory
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager, validator *forms.Validator, users forms.UserDirectory) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		validator:      validator,
		users:          users,
	}
}

// RegisterRoutes registers authentication routes on the router. Logout is
// wrapped by the auth guard because only an authenticated session can be
// cleared.
func (ac *Controller) RegisterRoutes(router *gin.Engine, guard gin.HandlerFunc) {
	router.GET("/auth/register", ac.RegisterPage)
	router.POST("/auth/register", ac.Register)
	router.GET("/auth/login", ac.LoginPage)
	router.POST("/auth/login", ac.Login)
	router.GET("/auth/logout", guard, ac.Logout)
	router.POST("/auth/logout", guard, ac.Logout)
}

// RegisterPage renders the registration form.
func (ac *Controller) RegisterPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "register", gin.H{
		"Title":     "Реєстрація",
		"CSRFToken": GetCSRFToken(c),
		"Form":      forms.RegisterForm{},
		"Errors":    forms.Errors{},
	})
}

// Register handles the registration form submission. On success the user is
// sent to the login page; registration does not auto-login.
func (ac *Controller) Register(c *gin.Context) {
	form := forms.RegisterForm{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Confirm:  c.PostForm("confirm"),
	}

	errs, err := ac.validator.ValidateRegister(form, ac.users)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if errs.Any() {
		ac.renderRegister(c, form, errs)
		return
	}

	_, err = ac.service.Register(form.Username, form.Email, form.Password)
	if err != nil {
		// A concurrent registration can slip past the validator; the unique
		// index reports it here and it is re-presented as a field error.
		if errors.Is(err, ErrUserExists) {
			errs.Add("username", "is already taken")
			ac.renderRegister(c, form, errs)
			return
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/auth/login")
}

func (ac *Controller) renderRegister(c *gin.Context, form forms.RegisterForm, errs forms.Errors) {
	form.Password = ""
	form.Confirm = ""
	c.HTML(http.StatusOK, "register", gin.H{
		"Title":     "Реєстрація",
		"CSRFToken": GetCSRFToken(c),
		"Form":      form,
		"Errors":    errs,
	})
}

// LoginPage renders the login form.
func (ac *Controller) LoginPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "login", gin.H{
		"Title":     "Вхід",
		"Next":      SanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
	})
}

// Login handles the login form submission. Unknown username and wrong
// password produce the same generic message.
func (ac *Controller) Login(c *gin.Context) {
	form := forms.LoginForm{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	next := SanitizeRedirectPath(c.PostForm("next"))

	if errs := ac.validator.ValidateLogin(form); errs.Any() {
		ac.renderLogin(c, form, next, "Введіть ім'я користувача та пароль.")
		return
	}

	user, err := ac.service.Authenticate(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ac.renderLogin(c, form, next, "Невірні логін або пароль.")
			return
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		ac.renderLogin(c, form, next, "Не вдалося створити сесію.")
		return
	}

	c.Redirect(http.StatusFound, next)
}

func (ac *Controller) renderLogin(c *gin.Context, form forms.LoginForm, next, message string) {
	c.HTML(http.StatusOK, "login", gin.H{
		"Title":     "Вхід",
		"Next":      next,
		"Username":  form.Username,
		"CSRFToken": GetCSRFToken(c),
		"Error":     message,
	})
}

// Logout destroys the session and returns to the listing.
func (ac *Controller) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)
	c.Redirect(http.StatusFound, "/")
}
