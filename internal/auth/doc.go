// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

// Package auth provides the credential and token domain for Authgate.
//
// # Domain Types
//
// User values should be created through NewUser, which validates the
// username and email and assigns the identity fields. Direct struct
// initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated values from the
// constructor.
//
// # Services
//
// Service orchestrates registration, login, and token-based
// authentication over a UserRepository, a PasswordHasher, and a
// TokenIssuer. Tokens are stateless: the server keeps no token table,
// and verification is a signature check, an expiry check, and a
// re-lookup of the subject.
package auth
