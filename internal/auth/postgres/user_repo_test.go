// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/auth"
	"github.com/authgate/authgate/internal/auth/postgres"
)

func newMockRepo(t *testing.T) (*postgres.UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return postgres.NewUserRepositoryWithQuerier(mock), mock
}

func testUser(t *testing.T) *auth.User {
	t.Helper()
	return &auth.User{
		ID:           ulid.Make(),
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$salt$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts user", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID.String(), user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID.String(), user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repo.Create(ctx, user)
		require.Error(t, err)
		assert.Equal(t, auth.KindConflict, auth.ErrorKind(err))
	})

	t.Run("other database error is not a conflict", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID.String(), user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(errors.New("connection refused"))

		err := repo.Create(ctx, user)
		require.Error(t, err)
		assert.Equal(t, auth.KindInternal, auth.ErrorKind(err))
	})
}

func userRows(user *auth.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(user.ID.String(), user.Username, user.Email, user.PasswordHash, user.CreatedAt)
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored user", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := testUser(t)

		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs(user.ID.String()).
			WillReturnRows(userRows(user))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
	})

	t.Run("no rows wraps ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := ulid.Make()

		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

		_, err := repo.GetByID(ctx, id)
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored user", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := testUser(t)

		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs(user.Email).
			WillReturnRows(userRows(user))

		got, err := repo.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("no rows wraps ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs("nobody@x.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

		_, err := repo.GetByEmail(ctx, "nobody@x.com")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}

func TestUserRepository_GetByEmailOrUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("matches on either field", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		user := testUser(t)

		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs(user.Email, user.Username).
			WillReturnRows(userRows(user))

		got, err := repo.GetByEmailOrUsername(ctx, user.Email, user.Username)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("no rows wraps ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs("nobody@x.com", "nobody").
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

		_, err := repo.GetByEmailOrUsername(ctx, "nobody@x.com", "nobody")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("corrupt id fails scan", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow("not-a-ulid", "alice", "alice@x.com", "hash", time.Now())
		mock.ExpectQuery("SELECT id, username, email, password_hash, created_at").
			WithArgs("alice@x.com", "alice").
			WillReturnRows(rows)

		_, err := repo.GetByEmailOrUsername(ctx, "alice@x.com", "alice")
		assert.Error(t, err)
	})
}
