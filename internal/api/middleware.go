// Package api implements the AeroLogix REST API using chi.
package api

import (
	"context"
	"net/http"

	"github.com/aerologix/aerologix/internal/auth"
	"github.com/aerologix/aerologix/internal/fleet"
	"github.com/aerologix/aerologix/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth returns middleware that resolves the Bearer token to a user
// and injects it into the request context. Requests without a valid session
// get 401.
func RequireAuth(svc *fleet.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearer(r.Header.Get("Authorization"))
			user, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser returns the authenticated user stored by RequireAuth.
func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userContextKey).(*models.User)
	return u
}
