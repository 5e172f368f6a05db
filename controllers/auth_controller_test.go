package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spareparts-app/config"
	"spareparts-app/services"
)

func newAuthController(db *gorm.DB) *AuthController {
	cfg := &config.Config{BaseURL: "http://localhost:3000"}
	return NewAuthController(db, cfg, services.NewEmailService(cfg))
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := newTestEngine(t)
	r.POST("/auth/login", newAuthController(db).Login)

	w := postForm(r, "/auth/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := newMockDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
			AddRow("u1", "bob@example.com", string(hash)))

	r := newTestEngine(t)
	r.POST("/auth/login", newAuthController(db).Login)

	w := postForm(r, "/auth/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"battery-staple"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	db, mock := newMockDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).
			AddRow("u1", "bob@example.com", string(hash)))

	r := newTestEngine(t)
	r.POST("/auth/login", newAuthController(db).Login)

	w := postForm(r, "/auth/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow("u1", "bob", "bob@example.com"))

	r := newTestEngine(t)
	r.POST("/auth/register", newAuthController(db).Register)

	w := postForm(r, "/auth/register", url.Values{
		"username": {"bob"},
		"email":    {"bob@example.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/register", w.Header().Get("Location"))
	// No INSERT must have been issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	db, mock := newMockDB(t)

	r := newTestEngine(t)
	r.POST("/auth/register", newAuthController(db).Register)

	w := postForm(r, "/auth/register", url.Values{
		"username": {"ab"}, // too short
		"email":    {"bob@example.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/register", w.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCreatesUserAndLogsIn(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnError(gorm.ErrRecordNotFound)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	r := newTestEngine(t)
	r.POST("/auth/register", newAuthController(db).Register)

	w := postForm(r, "/auth/register", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Result().Cookies())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordRejectsStaleToken(t *testing.T) {
	db, mock := newMockDB(t)

	// User exists but has no pending reset token
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username"}).
			AddRow("u1", "bob@example.com", "bob"))

	r := newTestEngine(t)
	r.POST("/auth/reset-password", newAuthController(db).ResetPassword)

	w := postForm(r, "/auth/reset-password", url.Values{
		"userId":   {"u1"},
		"token":    {"deadbeef"},
		"password": {"newsecret"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/reset-password", w.Header().Get("Location"))
	// The password update must never run for an invalid token
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateResetTokenIsUnique(t *testing.T) {
	a, err := generateResetToken()
	require.NoError(t, err)
	b, err := generateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
