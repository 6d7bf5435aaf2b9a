package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserStoreWithMock(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db), mock
}

func TestGetByEmail_Found(t *testing.T) {
	s, mock := newUserStoreWithMock(t)

	mock.ExpectQuery(`SELECT id, email, password_hash FROM users WHERE email = \$1`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(1, "admin@example.com", "$2a$10$hash"))

	u, err := s.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "admin@example.com", u.Email)
}

func TestGetByEmail_NotFound(t *testing.T) {
	s, mock := newUserStoreWithMock(t)

	mock.ExpectQuery(`SELECT id, email, password_hash FROM users`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUser(t *testing.T) {
	s, mock := newUserStoreWithMock(t)

	mock.ExpectQuery(`INSERT INTO users \(email, password_hash\) VALUES \(\$1, \$2\)`).
		WithArgs("admin@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(1, "admin@example.com", "hash"))

	u, err := s.Create(context.Background(), "admin@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}
