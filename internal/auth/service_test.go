// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/auth"
)

// memUserRepository is an in-memory auth.UserRepository for tests. Its
// Create enforces uniqueness the way the postgres repository does, so
// service tests exercise the storage-level conflict path too.
type memUserRepository struct {
	mu    sync.Mutex
	users map[ulid.ULID]*auth.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[ulid.ULID]*auth.User)}
}

func (r *memUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return oops.Code(auth.CodeDuplicateUser).Errorf("duplicate user")
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepository) GetByID(_ context.Context, id ulid.ULID) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepository) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *memUserRepository) GetByEmailOrUsername(_ context.Context, email, username string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) || strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, auth.ErrNotFound
}

func (r *memUserRepository) delete(id ulid.ULID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// countingHasher wraps a PasswordHasher and counts Hash calls.
type countingHasher struct {
	auth.PasswordHasher
	hashCalls int
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashCalls++
	return h.PasswordHasher.Hash(password)
}

func newTestService(t *testing.T) (*auth.Service, *memUserRepository, *countingHasher) {
	t.Helper()
	repo := newMemUserRepository()
	hasher := &countingHasher{PasswordHasher: auth.NewArgon2idHasher()}
	issuer, err := auth.NewTokenIssuer([]byte(testSecret))
	require.NoError(t, err)
	return auth.NewService(repo, hasher, issuer), repo, hasher
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues a valid token", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		user, token, err := svc.Register(ctx, "alice", "Alice@X.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@x.com", user.Email)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))

		resolved, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	})

	t.Run("duplicate email fails with conflict", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "other", "alice@x.com", "secret1")
		require.Error(t, err)
		assert.Equal(t, auth.KindConflict, auth.ErrorKind(err))
	})

	t.Run("duplicate username fails with conflict", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		_, _, err = svc.Register(ctx, "alice", "other@x.com", "secret1")
		require.Error(t, err)
		assert.Equal(t, auth.KindConflict, auth.ErrorKind(err))
	})

	t.Run("validation failures never reach the hasher", func(t *testing.T) {
		svc, _, hasher := newTestService(t)

		cases := []struct{ username, email, password string }{
			{"ab", "alice@x.com", "secret1"},
			{"alice", "bad-email", "secret1"},
			{"alice", "alice@x.com", "short"},
		}
		for _, tc := range cases {
			_, _, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, auth.KindValidation, auth.ErrorKind(err))
		}
		assert.Zero(t, hasher.hashCalls)
	})

	t.Run("duplicate pre-check hit never reaches the hasher", func(t *testing.T) {
		svc, _, hasher := newTestService(t)

		_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)
		callsAfterFirst := hasher.hashCalls

		_, _, err = svc.Register(ctx, "alice", "other@x.com", "secret1")
		require.Error(t, err)
		assert.Equal(t, callsAfterFirst, hasher.hashCalls)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a fresh token", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		user, registerToken, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		loggedIn, loginToken, err := svc.Login(ctx, "alice@x.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEqual(t, registerToken, loginToken)

		// Both tokens authenticate.
		_, err = svc.Authenticate(ctx, registerToken)
		assert.NoError(t, err)
		_, err = svc.Authenticate(ctx, loginToken)
		assert.NoError(t, err)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		_, _, err = svc.Login(ctx, "ALICE@X.COM", "secret1")
		assert.NoError(t, err)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, _, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		_, _, wrongPassErr := svc.Login(ctx, "alice@x.com", "wrongpass")
		require.Error(t, wrongPassErr)
		_, _, unknownErr := svc.Login(ctx, "nobody@x.com", "whatever")
		require.Error(t, unknownErr)

		assert.Equal(t, auth.KindUnauthorized, auth.ErrorKind(wrongPassErr))
		assert.Equal(t, auth.KindUnauthorized, auth.ErrorKind(unknownErr))
		assert.Equal(t, wrongPassErr.Error(), unknownErr.Error())
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects token whose subject no longer exists", func(t *testing.T) {
		svc, repo, _ := newTestService(t)

		user, token, err := svc.Register(ctx, "alice", "alice@x.com", "secret1")
		require.NoError(t, err)

		repo.delete(user.ID)

		_, err = svc.Authenticate(ctx, token)
		require.Error(t, err)
		assert.Equal(t, auth.KindUnauthorized, auth.ErrorKind(err))
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Authenticate(ctx, "garbage")
		require.Error(t, err)
		assert.Equal(t, auth.KindUnauthorized, auth.ErrorKind(err))
	})
}

func TestService_CurrentUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := &auth.User{Username: "alice"}
	assert.Same(t, user, svc.CurrentUser(user))
}
