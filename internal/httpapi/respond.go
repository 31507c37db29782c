// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

// Package httpapi exposes the authentication service over HTTP.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/authgate/authgate/internal/auth"
)

// genericUnauthorized is the single outward message for every
// authentication failure. Missing token, bad signature, expired token,
// and vanished subject are indistinguishable to the caller.
const genericUnauthorized = "Please authenticate."

// userPayload is the client-facing projection of a user. The password
// hash has no field here and can never be serialized.
type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserPayload(u *auth.User) userPayload {
	return userPayload{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Status: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Status: "error", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeServiceError maps a service error onto the wire. Validation and
// conflict failures carry their reason; everything unanticipated is a
// generic 500 with the detail only logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch auth.ErrorKind(err) {
	case auth.KindValidation, auth.KindConflict:
		writeError(w, http.StatusBadRequest, err.Error())
	case auth.KindUnauthorized:
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
