// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterDeps bundles the dependencies NewRouter needs.
type RouterDeps struct {
	Service       AuthService
	Authenticator Authenticator
	Metrics       *Metrics
	CORSOrigin    string
}

// NewRouter builds the API router.
//
// Middleware order: Recovery → Logging → CORS. The auth gate applies
// only to the protected group; register and login are reachable
// without a token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(NewRecoveryMiddleware())
	r.Use(NewLoggingMiddleware())
	if deps.CORSOrigin != "" {
		r.Use(NewCORSMiddleware(deps.CORSOrigin))
	}

	h := NewAuthHandler(deps.Service, deps.Metrics)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(NewAuthMiddleware(deps.Authenticator, deps.Metrics))
			r.Get("/me", h.Me)
		})
	})

	return r
}
