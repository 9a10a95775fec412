/**
 * @description
 * HTTP middleware for the back-office API: bearer-token authentication backed
 * by the revocable session store, and per-route permission enforcement against
 * the signed-in agent's role.
 */
package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userIDKey stores the authenticated agent's id in the request context.
	userIDKey contextKey = "userID"
	// sessionIDKey stores the session id so logout can revoke it.
	sessionIDKey contextKey = "sessionID"
)

// Authenticator validates the bearer token and checks the session is live.
func Authenticator(auth *app.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Missing auth credentials.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeError(w, http.StatusUnauthorized, "Invalid Authorization header format.")
				return
			}

			claims, err := auth.VerifyToken(r.Context(), parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, sessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission rejects requests whose agent's role does not grant the
// permission.
func RequirePermission(auth *app.AuthService, permission domain.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := userIDFromContext(r.Context())
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "Missing auth credentials.")
				return
			}

			_, role, err := auth.Profile(r.Context(), userID)
			if err != nil {
				log.Printf("level=error component=api middleware=require_permission outcome=failed user_id=%s err=%v", userID, err)
				writeError(w, http.StatusInternalServerError, "Could not verify permissions.")
				return
			}
			if role == nil || !role.HasPermission(permission) {
				writeError(w, http.StatusForbidden, "Permission denied.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// userIDFromContext retrieves the authenticated agent's id, or "".
func userIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// sessionIDFromContext retrieves the session id, or "".
func sessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}
