// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// TokenValidity is the fixed lifetime of an issued token.
const TokenValidity = 7 * 24 * time.Hour

// tokenSigningMethod is the only accepted signing algorithm. The
// issuer and verifier share one process-wide secret; verification with
// a different key invalidates every outstanding token.
var tokenSigningMethod = jwt.SigningMethodHS256

// TokenIssuer issues and verifies stateless bearer tokens. A token is
// self-contained: subject, issued-at, and expiry travel in the signed
// payload and no server-side record is kept.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer with the shared signing secret.
func NewTokenIssuer(secret []byte) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_SECRET_EMPTY").Errorf("token signing secret cannot be empty")
	}
	return &TokenIssuer{secret: secret, now: time.Now}, nil
}

// Issue produces a signed token asserting subject for TokenValidity.
// The token ID makes two tokens issued within the same second distinct.
func (i *TokenIssuer) Issue(subject ulid.ULID) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(tokenSigningMethod, jwt.RegisteredClaims{
		Subject:   subject.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		ID:        ulid.Make().String(),
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the asserted subject.
// It is pure in-memory computation; resolving the subject to a live
// user is the caller's step.
func (i *TokenIssuer) Verify(tokenString string) (ulid.ULID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{tokenSigningMethod.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ulid.ULID{}, oops.Code(CodeTokenExpired).Wrap(err)
		}
		return ulid.ULID{}, oops.Code(CodeTokenInvalid).Wrap(err)
	}

	subject, err := ulid.Parse(claims.Subject)
	if err != nil {
		return ulid.ULID{}, oops.Code(CodeTokenInvalid).
			With("subject", claims.Subject).
			Wrap(err)
	}
	return subject, nil
}
