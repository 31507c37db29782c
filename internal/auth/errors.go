// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package auth

import (
	"errors"

	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes attached to oops errors. Transports map these to status
// codes through ErrorKind; log output keeps the precise code.
const (
	CodeInvalidUsername    = "AUTH_INVALID_USERNAME"
	CodeInvalidEmail       = "AUTH_INVALID_EMAIL"
	CodeInvalidPassword    = "AUTH_INVALID_PASSWORD"
	CodeEmptyPassword      = "AUTH_EMPTY_PASSWORD"
	CodeDuplicateUser      = "AUTH_DUPLICATE_USER"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	CodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	CodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	CodeInvalidHash        = "AUTH_INVALID_HASH"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindInternal is any fault not covered by a more specific kind.
	// Detail is logged, never sent to the client.
	KindInternal Kind = iota

	// KindValidation is malformed input: field length or format.
	KindValidation

	// KindConflict is a uniqueness violation.
	KindConflict

	// KindUnauthorized covers bad credentials, bad or expired tokens,
	// and unknown token subjects. Deliberately undifferentiated so the
	// caller cannot probe account existence.
	KindUnauthorized
)

var codeKinds = map[string]Kind{
	CodeInvalidUsername:    KindValidation,
	CodeInvalidEmail:       KindValidation,
	CodeInvalidPassword:    KindValidation,
	CodeEmptyPassword:      KindValidation,
	CodeDuplicateUser:      KindConflict,
	CodeInvalidCredentials: KindUnauthorized,
	CodeTokenInvalid:       KindUnauthorized,
	CodeTokenExpired:       KindUnauthorized,
}

// ErrorKind returns the Kind for err. Errors without a recognized oops
// code, including hash-format faults, classify as KindInternal.
func ErrorKind(err error) Kind {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return KindInternal
	}
	code, ok := oopsErr.Code().(string)
	if !ok {
		return KindInternal
	}
	kind, ok := codeKinds[code]
	if !ok {
		return KindInternal
	}
	return kind
}
