/**
 * @description
 * HTTP handlers for the role and permission console.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atharibank/backoffice-service/internal/app"
	"github.com/atharibank/backoffice-service/internal/domain"
)

// RoleHandler holds the dependencies for role console handlers.
type RoleHandler struct {
	service *app.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(service *app.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

// mapRoleError converts role service errors to HTTP responses.
func mapRoleError(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrRoleNotFound):
		return http.StatusNotFound, "Role not found."
	case errors.Is(err, app.ErrRoleNameRequired), errors.Is(err, app.ErrUnknownPermission):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Could not process role request."
}

// ListPermissions renders the static permission taxonomy.
func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.AllPermissions)
}

// ListRoles renders every role.
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.ListRoles(r.Context())
	if err != nil {
		log.Printf("level=error component=api endpoint=list_roles outcome=failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "Could not retrieve roles.")
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

// GetRole renders one role.
func (h *RoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.service.GetRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("level=error component=api endpoint=get_role outcome=failed err=%v", err)
		writeError(w, http.StatusInternalServerError, "Could not retrieve role.")
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found.")
		return
	}
	writeJSON(w, http.StatusOK, role)
}

// CreateRole creates a new role.
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var payload app.CreateRolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	role, err := h.service.CreateRole(r.Context(), payload)
	if err != nil {
		status, message := mapRoleError(err)
		if status == http.StatusInternalServerError {
			log.Printf("level=error component=api endpoint=create_role outcome=failed err=%v", err)
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusCreated, role)
}

// UpdateRole applies a partial edit to a role.
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var payload app.UpdateRolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	role, err := h.service.UpdateRole(r.Context(), chi.URLParam(r, "id"), payload)
	if err != nil {
		status, message := mapRoleError(err)
		if status == http.StatusInternalServerError {
			log.Printf("level=error component=api endpoint=update_role outcome=failed err=%v", err)
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, role)
}

// TogglePermissionRequest is the body of the permission toggle endpoint.
type TogglePermissionRequest struct {
	Permission domain.Permission `json:"permission"`
}

// TogglePermission grants or revokes one permission on a role.
func (h *RoleHandler) TogglePermission(w http.ResponseWriter, r *http.Request) {
	var payload TogglePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	role, err := h.service.TogglePermission(r.Context(), chi.URLParam(r, "id"), payload.Permission)
	if err != nil {
		status, message := mapRoleError(err)
		if status == http.StatusInternalServerError {
			log.Printf("level=error component=api endpoint=toggle_permission outcome=failed err=%v", err)
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, role)
}

// DeleteRole removes a role.
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRole(r.Context(), chi.URLParam(r, "id")); err != nil {
		status, message := mapRoleError(err)
		if status == http.StatusInternalServerError {
			log.Printf("level=error component=api endpoint=delete_role outcome=failed err=%v", err)
		}
		writeError(w, status, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
