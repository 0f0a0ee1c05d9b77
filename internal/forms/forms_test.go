package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserDirectory struct {
	usernames map[string]bool
	emails    map[string]bool
	err       error
}

func (s *stubUserDirectory) UsernameExists(username string) (bool, error) {
	return s.usernames[username], s.err
}

func (s *stubUserDirectory) EmailExists(email string) (bool, error) {
	return s.emails[email], s.err
}

type stubGenreDirectory struct {
	known map[uint]bool
	err   error
}

func (s *stubGenreDirectory) GenreExists(id uint) (bool, error) {
	return s.known[id], s.err
}

func emptyDirectory() *stubUserDirectory {
	return &stubUserDirectory{usernames: map[string]bool{}, emails: map[string]bool{}}
}

func validRegisterForm() RegisterForm {
	return RegisterForm{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Confirm:  "secret123",
	}
}

func TestValidateRegister_Valid(t *testing.T) {
	val := NewValidator()

	errs, err := val.ValidateRegister(validRegisterForm(), emptyDirectory())
	require.NoError(t, err)
	assert.False(t, errs.Any())
}

func TestValidateRegister_MultiByteWithinBound(t *testing.T) {
	val := NewValidator()

	form := validRegisterForm()
	form.Password = strings.Repeat("ж", 30)
	form.Confirm = form.Password

	errs, err := val.ValidateRegister(form, emptyDirectory())
	require.NoError(t, err)
	assert.False(t, errs.Any())
}

func TestValidateRegister_ReportsAllFields(t *testing.T) {
	val := NewValidator()

	errs, err := val.ValidateRegister(RegisterForm{}, emptyDirectory())
	require.NoError(t, err)

	assert.Equal(t, "is required", errs["username"])
	assert.Equal(t, "is required", errs["email"])
	assert.Equal(t, "is required", errs["password"])
	assert.Equal(t, "is required", errs["confirm"])
}

func TestValidateRegister_FieldRules(t *testing.T) {
	val := NewValidator()

	tests := []struct {
		name    string
		mutate  func(*RegisterForm)
		field   string
		message string
	}{
		{
			name:    "short username",
			mutate:  func(f *RegisterForm) { f.Username = "ab" },
			field:   "username",
			message: "must be at least 3 characters",
		},
		{
			name:    "malformed email",
			mutate:  func(f *RegisterForm) { f.Email = "not-an-email" },
			field:   "email",
			message: "must be a valid email address",
		},
		{
			name:    "short password",
			mutate:  func(f *RegisterForm) { f.Password = "12345"; f.Confirm = "12345" },
			field:   "password",
			message: "must be at least 6 characters",
		},
		{
			name:    "password mismatch",
			mutate:  func(f *RegisterForm) { f.Confirm = "different" },
			field:   "confirm",
			message: "passwords do not match",
		},
		{
			name: "multi-byte password over byte bound",
			mutate: func(f *RegisterForm) {
				// 40 Cyrillic runes are 80 bytes, past what bcrypt may see
				long := strings.Repeat("ж", 40)
				f.Password = long
				f.Confirm = long
			},
			field:   "password",
			message: "must not exceed 64 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validRegisterForm()
			tt.mutate(&form)

			errs, err := val.ValidateRegister(form, emptyDirectory())
			require.NoError(t, err)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestValidateRegister_UniquenessChecks(t *testing.T) {
	val := NewValidator()
	dir := &stubUserDirectory{
		usernames: map[string]bool{"alice": true},
		emails:    map[string]bool{"alice@example.com": true},
	}

	errs, err := val.ValidateRegister(validRegisterForm(), dir)
	require.NoError(t, err)
	assert.Equal(t, "is already taken", errs["username"])
	assert.Equal(t, "is already registered", errs["email"])
}

func TestValidateRegister_DirectoryFailure(t *testing.T) {
	val := NewValidator()
	dir := emptyDirectory()
	dir.err = errors.New("database closed")

	_, err := val.ValidateRegister(validRegisterForm(), dir)
	assert.Error(t, err)
}

func TestValidateLogin(t *testing.T) {
	val := NewValidator()

	errs := val.ValidateLogin(LoginForm{Username: "alice", Password: "secret123"})
	assert.False(t, errs.Any())

	errs = val.ValidateLogin(LoginForm{})
	assert.Equal(t, "is required", errs["username"])
	assert.Equal(t, "is required", errs["password"])
}

func TestValidateBook_Valid(t *testing.T) {
	val := NewValidator()
	dir := &stubGenreDirectory{known: map[uint]bool{1: true}}

	form := BookForm{
		Title:       "Хірург",
		Author:      "Тесс Ґеррітсен",
		GenreID:     1,
		Description: "Трилер про серійного вбивцю.",
	}

	errs, err := val.ValidateBook(form, dir)
	require.NoError(t, err)
	assert.False(t, errs.Any())
}

func TestValidateBook_RequiredFields(t *testing.T) {
	val := NewValidator()
	dir := &stubGenreDirectory{known: map[uint]bool{}}

	errs, err := val.ValidateBook(BookForm{}, dir)
	require.NoError(t, err)

	assert.Equal(t, "is required", errs["title"])
	assert.Equal(t, "is required", errs["author"])
	assert.Equal(t, "is required", errs["genre"])
	assert.Equal(t, "is required", errs["description"])
}

func TestValidateBook_UnknownGenre(t *testing.T) {
	val := NewValidator()
	dir := &stubGenreDirectory{known: map[uint]bool{1: true}}

	form := BookForm{
		Title:       "Хірург",
		Author:      "Тесс Ґеррітсен",
		GenreID:     42,
		Description: "Опис.",
	}

	errs, err := val.ValidateBook(form, dir)
	require.NoError(t, err)
	assert.Equal(t, "must be one of the known genres", errs["genre"])
}

func TestValidateBook_CoverURLOptional(t *testing.T) {
	val := NewValidator()
	dir := &stubGenreDirectory{known: map[uint]bool{1: true}}

	form := BookForm{
		Title:       "Хірург",
		Author:      "Тесс Ґеррітсен",
		GenreID:     1,
		CoverURL:    "",
		Description: "Опис.",
	}

	errs, err := val.ValidateBook(form, dir)
	require.NoError(t, err)
	assert.False(t, errs.Any())
}

func TestErrors_AddKeepsFirstMessage(t *testing.T) {
	errs := make(Errors)
	errs.Add("username", "is required")
	errs.Add("username", "is already taken")

	assert.Equal(t, "is required", errs["username"])
	assert.True(t, errs.Any())
}
