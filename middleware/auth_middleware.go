package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"dabois-portal/util"
)

// UserIDKeyType keeps the context key private to this package's type.
type UserIDKeyType string

// UserIDKey is the key under which the authenticated user's id is stored in
// the request context.
const UserIDKey UserIDKeyType = "userID"

// AuthMiddleware rejects requests without a valid session and stashes the
// session's user id in the request context for downstream handlers.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := util.GetUserIDFromRequest(r)
		if err != nil {
			log.Error().Err(err).Msg("reading session cookie")
			http.Error(w, "Server error processing authentication", http.StatusInternalServerError)
			return
		}
		if userID == "" {
			log.Debug().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("unauthorized request")
			http.Error(w, "Unauthorized: You must be logged in.", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
