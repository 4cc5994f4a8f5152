package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafguard/leafguard-be/internal/apperr"
	"github.com/leafguard/leafguard-be/internal/auth"
)

func newUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserService(db, 5*time.Second), mock
}

func TestSignUp_Success(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("rosa@plantlab.io").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	user, err := svc.SignUp(context.Background(), "Rosa", "Linden", "rosa@plantlab.io", "pw-secret")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Rosa", user.FirstName)
	assert.Equal(t, "rosa@plantlab.io", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUp_DuplicateOnPrecheck(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("rosa@plantlab.io").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.SignUp(context.Background(), "Rosa", "Linden", "rosa@plantlab.io", "pw-secret")
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent signup can slip past the pre-check; the unique index on
// users.email is the authority and its violation must still surface as the
// duplicate error.
func TestSignUp_DuplicateOnInsertRace(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("rosa@plantlab.io").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	_, err := svc.SignUp(context.Background(), "Rosa", "Linden", "rosa@plantlab.io", "pw-secret")
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignUp_StoreFailure(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnError(errors.New("connection refused"))

	_, err := svc.SignUp(context.Background(), "Rosa", "Linden", "rosa@plantlab.io", "pw-secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func userRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return sqlmock.
		NewRows([]string{"id", "first_name", "last_name", "email", "password_hash", "created_at"}).
		AddRow("user-1", "Ana", "Xu", "a@x.com", hash, time.Now())
}

func TestAuthenticate_Success(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email")).
		WithArgs("a@x.com").
		WillReturnRows(userRow(t, "pw1"))

	user, err := svc.Authenticate(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email")).
		WithArgs("a@x.com").
		WillReturnRows(userRow(t, "pw1"))

	_, err := svc.Authenticate(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email")).
		WithArgs("b@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Authenticate(context.Background(), "b@x.com", "pw1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetProfile_Success(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT first_name, last_name, email FROM users WHERE id")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.
			NewRows([]string{"first_name", "last_name", "email"}).
			AddRow("Ana", "Xu", "a@x.com"))

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.FirstName)
	assert.Equal(t, "Xu", profile.LastName)
	assert.Equal(t, "a@x.com", profile.Email)
}

// A user row deleted after token issuance is reported as not-found.
func TestGetProfile_DeletedUser(t *testing.T) {
	svc, mock := newUserService(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT first_name, last_name, email FROM users WHERE id")).
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetProfile(context.Background(), "gone")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
