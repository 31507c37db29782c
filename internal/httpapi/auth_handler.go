// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/authgate/authgate/internal/auth"
)

// AuthService is the service surface the handlers need.
// auth.Service satisfies it.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*auth.User, string, error)
	Login(ctx context.Context, email, password string) (*auth.User, string, error)
}

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	service AuthService
	metrics *Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service AuthService, metrics *Metrics) *AuthHandler {
	return &AuthHandler{service: service, metrics: metrics}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authPayload struct {
	User  userPayload `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new account and returns it with a bearer token.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.observeRegistration("invalid")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.metrics.observeRegistration(registerOutcome(err))
		writeServiceError(w, r, err)
		return
	}

	h.metrics.observeRegistration("ok")
	writeSuccess(w, http.StatusCreated, authPayload{
		User:  toUserPayload(user),
		Token: token,
	})
}

// Login authenticates by email and password and returns a fresh token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.observeLogin("invalid")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.observeLogin(loginOutcome(err))
		writeServiceError(w, r, err)
		return
	}

	h.metrics.observeLogin("ok")
	writeSuccess(w, http.StatusOK, authPayload{
		User:  toUserPayload(user),
		Token: token,
	})
}

// Me returns the user resolved by the auth middleware.
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, genericUnauthorized)
		return
	}

	writeSuccess(w, http.StatusOK, struct {
		User userPayload `json:"user"`
	}{User: toUserPayload(user)})
}

func registerOutcome(err error) string {
	switch auth.ErrorKind(err) {
	case auth.KindValidation:
		return "invalid"
	case auth.KindConflict:
		return "conflict"
	default:
		return "error"
	}
}

func loginOutcome(err error) string {
	if auth.ErrorKind(err) == auth.KindUnauthorized {
		return "rejected"
	}
	return "error"
}
