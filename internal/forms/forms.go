// Package forms validates submitted form values before they reach
// persistence. Every failing field is reported, not just the first; the
// uniqueness checks are advisory only, the database unique indexes remain the
// authoritative guard.
package forms

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// RegisterForm carries the registration fields. The password bound counts
// bytes, not runes, so it agrees with the hashing layer: bcrypt rejects
// inputs over 72 bytes, and a multi-byte password that slipped past a rune
// count would fail there as a server error instead of a field error.
type RegisterForm struct {
	Username string `form:"username" validate:"required,min=3,max=80"`
	Email    string `form:"email" validate:"required,email,max=120"`
	Password string `form:"password" validate:"required,min=6,bytemax=64"`
	Confirm  string `form:"confirm" validate:"required,eqfield=Password"`
}

// LoginForm carries the login fields. Credential mismatch is reported by the
// authentication step, not here.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// BookForm carries the add-book fields. GenreID must reference a known genre,
// which is checked against the live genre set.
type BookForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Author      string `form:"author" validate:"required,max=120"`
	GenreID     uint   `form:"genre" validate:"required"`
	CoverURL    string `form:"cover_url" validate:"omitempty,max=255"`
	Description string `form:"description" validate:"required,max=1000"`
}

// Errors maps a form field name to its validation message.
type Errors map[string]string

// Add records a message for a field, keeping the first one per field.
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Any reports whether any field failed validation.
func (e Errors) Any() bool {
	return len(e) > 0
}

// UserDirectory is the lookup surface the registration uniqueness checks
// need.
type UserDirectory interface {
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
}

// GenreDirectory is the lookup surface the book form genre check needs.
type GenreDirectory interface {
	GenreExists(id uint) (bool, error)
}

// Validator wraps go-playground/validator with form-tag field names and
// friendly messages.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator configured for the catalog forms.
func NewValidator() *Validator {
	v := validator.New()

	// Use form tag names in error maps
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Byte-counted upper bound; the built-in max counts runes
	must(v.RegisterValidation("bytemax", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	}))

	return &Validator{v: v}
}

// ValidateRegister checks the registration form, including username and
// email uniqueness. The returned error reports a store failure, not a
// validation outcome.
func (val *Validator) ValidateRegister(form RegisterForm, users UserDirectory) (Errors, error) {
	errs := val.collect(form)

	if _, bad := errs["username"]; !bad {
		taken, err := users.UsernameExists(form.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			errs.Add("username", "is already taken")
		}
	}

	if _, bad := errs["email"]; !bad {
		taken, err := users.EmailExists(form.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			errs.Add("email", "is already registered")
		}
	}

	return errs, nil
}

// ValidateLogin checks that both credentials were submitted.
func (val *Validator) ValidateLogin(form LoginForm) Errors {
	return val.collect(form)
}

// ValidateBook checks the add-book form, including that the selected genre
// is one of the known genres.
func (val *Validator) ValidateBook(form BookForm, genres GenreDirectory) (Errors, error) {
	errs := val.collect(form)

	if _, bad := errs["genre"]; !bad {
		known, err := genres.GenreExists(form.GenreID)
		if err != nil {
			return nil, fmt.Errorf("failed to check genre: %w", err)
		}
		if !known {
			errs.Add("genre", "must be one of the known genres")
		}
	}

	return errs, nil
}

// collect runs struct validation and converts every field error into a
// friendly message.
func (val *Validator) collect(form any) Errors {
	errs := make(Errors)

	err := val.v.Struct(form)
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("form", "is invalid")
		return errs
	}

	for _, e := range validationErrs {
		errs.Add(e.Field(), friendlyMessage(e))
	}
	return errs
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "bytemax":
		return fmt.Sprintf("must not exceed %s bytes", e.Param())
	case "eqfield":
		return "passwords do not match"
	default:
		return "is invalid"
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
