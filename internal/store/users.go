package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"awc/internal/models"
)

// UserStore reads admin accounts.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByEmail returns the user with the given email, or ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	} else if err != nil {
		return models.User{}, fmt.Errorf("store: get user: %w", err)
	}
	return u, nil
}

// Create inserts an admin account with an already-hashed password.
func (s *UserStore) Create(ctx context.Context, email, passwordHash string) (models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash) VALUES ($1, $2)
		RETURNING id, email, password_hash`, email, passwordHash).
		Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("store: create user: %w", err)
	}
	return u, nil
}
