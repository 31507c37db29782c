// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/oops"
)

// Service provides registration, login, and token authentication.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenIssuer
}

// NewService creates a new Service.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenIssuer) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Register creates a new user and issues a token for it. Input is
// validated and the duplicate pre-check runs before the hasher is
// touched; the repository's unique constraint remains the last line of
// defense against a concurrent registration racing past the pre-check.
func (s *Service) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if err := ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	_, err := s.users.GetByEmailOrUsername(ctx, email, username)
	if err == nil {
		return nil, "", oops.Code(CodeDuplicateUser).
			Errorf("user with this email or username already exists")
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "check existing user").
			Wrap(err)
	}

	// Hash before create: an abandoned call before Create leaves no
	// orphaned record.
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(username, email, hash)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	return user, token, nil
}

// Login authenticates by email and password and issues a fresh token.
// An unknown email and a wrong password produce the identical error,
// and a dummy hash is verified for unknown emails to keep response
// time consistent.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = NormalizeEmail(email)

	user, lookupErr := s.users.GetByEmail(ctx, email)

	// Determine which hash to verify against (real or dummy for timing attack prevention)
	var targetHash string
	var userExists bool

	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			targetHash = dummyPasswordHash
			userExists = false
		} else {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify password (constant-time operation for timing attack prevention)
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		// For dummy hash verification errors, just treat as invalid
		if !userExists {
			return nil, "", invalidCredentials()
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	// If user doesn't exist OR password invalid, return same error
	if !userExists || !valid {
		return nil, "", invalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	return user, token, nil
}

// Authenticate resolves a bearer token to a live user. Signature and
// expiry are checked before any repository access; a subject that no
// longer exists is rejected with the same unauthorized kind as a bad
// token. Tokens cannot be revoked, so this re-lookup is the only
// repudiation path.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeTokenInvalid).
				With("subject", subject.String()).
				Errorf("user not found")
		}
		return nil, oops.Code("AUTH_AUTHENTICATE_FAILED").
			With("operation", "get user by id").
			Wrap(err)
	}
	return user, nil
}

// CurrentUser is a pure projection of the user already resolved by
// Authenticate; no additional lookup occurs.
func (s *Service) CurrentUser(user *User) *User {
	return user
}

func invalidCredentials() error {
	return oops.Code(CodeInvalidCredentials).Errorf("invalid credentials")
}
