/**
 * @description
 * HTTP handlers for authentication: login, logout and the signed-in agent's
 * profile.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/domain"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	service *app.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *app.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required.")
		return
	}

	result, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		log.Printf("level=error component=api endpoint=login outcome=failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "Could not sign in.")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Logout revokes the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, "Missing auth credentials.")
		return
	}

	if err := h.service.Logout(r.Context(), sessionID); err != nil {
		log.Printf("level=error component=api endpoint=logout outcome=failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "Could not sign out.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ProfileResponse is the payload of the profile endpoint.
type ProfileResponse struct {
	User *domain.AdminUser `json:"user"`
	Role *domain.Role      `json:"role,omitempty"`
}

// Me renders the signed-in agent's profile and role.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing auth credentials.")
		return
	}

	user, role, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		log.Printf("level=error component=api endpoint=me outcome=failed user_id=%s err=%v", userID, err)
		writeError(w, http.StatusInternalServerError, "Could not load profile.")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{User: user, Role: role})
}
