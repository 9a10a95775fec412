/**
 * @description
 * This file sets up the HTTP router for the back-office service using the
 * `chi` routing library. It defines all the API routes, the CORS policy for
 * the dashboard SPA, and the authentication and permission middleware stack.
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: The routing library.
 * - github.com/go-chi/cors: CORS middleware for the browser client.
 * - The service's internal packages for handlers and middleware.
 */
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/config"
	"github.com/atharibank/backoffice-service/internal/domain"
	"github.com/atharibank/backoffice-service/internal/views"
)

// NewRouter creates and configures a new HTTP router.
func NewRouter(
	cfg *config.Config,
	accounts *app.AccountService,
	viewEngine *views.Engine,
	roles *app.RoleService,
	fees *app.FeeService,
	auth *app.AuthService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	accountHandler := NewAccountHandler(accounts, viewEngine, fees)
	roleHandler := NewRoleHandler(roles)
	feeHandler := NewFeeHandler(fees)
	authHandler := NewAuthHandler(auth)

	r.Post("/auth/login", authHandler.Login)

	// Everything else requires a live session.
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(auth))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Route("/accounts", func(r chi.Router) {
			r.With(RequirePermission(auth, domain.PermAccountsRead)).Group(func(r chi.Router) {
				r.Get("/", accountHandler.ListAccounts)
				r.Get("/summary", accountHandler.Summary)
				r.Get("/{id}", accountHandler.GetAccount)
			})
			r.With(RequirePermission(auth, domain.PermAccountsWrite)).Group(func(r chi.Router) {
				r.Post("/", accountHandler.CreateAccount)
				r.Post("/refresh", accountHandler.RefreshAccounts)
				r.Put("/{id}", accountHandler.UpdateAccount)
				r.Delete("/filters", accountHandler.ClearFilters)
			})
			r.With(RequirePermission(auth, domain.PermAccountsDelete)).
				Delete("/{id}", accountHandler.DeleteAccount)
			r.With(RequirePermission(auth, domain.PermAccountsStatus)).
				Patch("/{id}/status", accountHandler.UpdateAccountStatus)
		})

		r.With(RequirePermission(auth, domain.PermRolesManage)).Route("/roles", func(r chi.Router) {
			r.Get("/", roleHandler.ListRoles)
			r.Post("/", roleHandler.CreateRole)
			r.Get("/{id}", roleHandler.GetRole)
			r.Put("/{id}", roleHandler.UpdateRole)
			r.Post("/{id}/toggle", roleHandler.TogglePermission)
			r.Delete("/{id}", roleHandler.DeleteRole)
		})
		r.Get("/permissions", roleHandler.ListPermissions)

		r.With(RequirePermission(auth, domain.PermFeesRead)).
			Get("/fees", feeHandler.ListFees)
	})

	return r
}

// writeJSON is a helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"Failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError is a helper to write a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
