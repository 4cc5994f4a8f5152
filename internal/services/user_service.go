package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leafguard/leafguard-be/internal/apperr"
	"github.com/leafguard/leafguard-be/internal/auth"
	"github.com/leafguard/leafguard-be/internal/models"
)

// Postgres unique_violation.
const uniqueViolationCode = "23505"

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	SignUp(ctx context.Context, firstName, lastName, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	GetProfile(ctx context.Context, id string) (models.Profile, error)
}

// UserService provides signup, login and profile lookups over the store.
type UserService struct {
	db           *sql.DB
	storeTimeout time.Duration
}

// NewUserService creates a new UserService. storeTimeout bounds every
// outbound store call.
func NewUserService(db *sql.DB, storeTimeout time.Duration) *UserService {
	return &UserService{db: db, storeTimeout: storeTimeout}
}

// SignUp registers a new user, hashing their password before insert. The
// email lookup is only a fast path for the common duplicate case; the unique
// index on users.email is the authority, and a concurrent signup losing the
// race surfaces here as apperr.ErrDuplicateEmail all the same.
func (s *UserService) SignUp(ctx context.Context, firstName, lastName, email, password string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return models.User{}, fmt.Errorf("checking existing email: %w", err)
	}
	if exists {
		return models.User{}, apperr.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		user.ID, user.FirstName, user.LastName, user.Email, hash).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return models.User{}, apperr.ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a user's credentials. A missing row and a wrong
// password are distinct failures: apperr.ErrNotFound and
// apperr.ErrInvalidCredentials respectively. The stored hash never leaves
// this method.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	var user models.User
	var hash string
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at
		 FROM users WHERE email = $1`, email)
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &hash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, apperr.ErrNotFound
		}
		return models.User{}, fmt.Errorf("looking up user: %w", err)
	}

	if err := auth.CheckPassword(password, hash); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// GetProfile retrieves the profile projection for a user ID. A row deleted
// after token issuance comes back as apperr.ErrNotFound.
func (s *UserService) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	var p models.Profile
	row := s.db.QueryRowContext(ctx,
		"SELECT first_name, last_name, email FROM users WHERE id = $1", id)
	err := row.Scan(&p.FirstName, &p.LastName, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, apperr.ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("looking up profile: %w", err)
	}
	return p, nil
}
