/**
 * @description
 * Business logic for the role and permission console. Roles are named sets of
 * permissions drawn from a static taxonomy; the console creates, renames,
 * toggles and deletes them. Persistence is delegated to a repository so the
 * logic stays testable against stubs.
 */
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/atharibank/backoffice-service/internal/domain"
)

var (
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleNameRequired  = errors.New("role name is required")
	ErrUnknownPermission = errors.New("unknown permission")
)

// RoleRepository defines the persistence operations the role console needs.
type RoleRepository interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	GetRoleByID(ctx context.Context, id string) (*domain.Role, error)
	CreateRole(ctx context.Context, role *domain.Role) error
	UpdateRole(ctx context.Context, role *domain.Role) error
	DeleteRole(ctx context.Context, id string) (bool, error)
}

// RoleService provides the role console operations.
type RoleService struct {
	repo RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{repo: repo}
}

// ListRoles returns every role.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.repo.ListRoles(ctx)
}

// GetRole returns one role by id.
func (s *RoleService) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	return s.repo.GetRoleByID(ctx, id)
}

// CreateRolePayload is the accepted body for creating a role.
type CreateRolePayload struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions []domain.Permission `json:"permissions"`
}

// CreateRole validates and persists a new role.
func (s *RoleService) CreateRole(ctx context.Context, payload CreateRolePayload) (*domain.Role, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, ErrRoleNameRequired
	}
	permissions, err := normalizePermissions(payload.Permissions)
	if err != nil {
		return nil, err
	}

	role := &domain.Role{
		Name:        name,
		Description: strings.TrimSpace(payload.Description),
		Permissions: permissions,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// UpdateRolePayload is the accepted body for editing a role. Nil fields keep
// their prior values.
type UpdateRolePayload struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	Permissions *[]domain.Permission `json:"permissions,omitempty"`
}

// UpdateRole applies a partial edit to an existing role.
func (s *RoleService) UpdateRole(ctx context.Context, id string, payload UpdateRolePayload) (*domain.Role, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			return nil, ErrRoleNameRequired
		}
		role.Name = name
	}
	if payload.Description != nil {
		role.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.Permissions != nil {
		permissions, err := normalizePermissions(*payload.Permissions)
		if err != nil {
			return nil, err
		}
		role.Permissions = permissions
	}

	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// TogglePermission grants the permission when the role lacks it and revokes it
// otherwise, mirroring the console's checkbox semantics.
func (s *RoleService) TogglePermission(ctx context.Context, id string, permission domain.Permission) (*domain.Role, error) {
	if !domain.ValidPermission(permission) {
		return nil, ErrUnknownPermission
	}

	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	if role.HasPermission(permission) {
		granted := make([]domain.Permission, 0, len(role.Permissions)-1)
		for _, p := range role.Permissions {
			if p != permission {
				granted = append(granted, p)
			}
		}
		role.Permissions = granted
	} else {
		role.Permissions = append(role.Permissions, permission)
	}

	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteRole(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRoleNotFound
	}
	return nil
}

// normalizePermissions validates the set and drops duplicates while keeping
// first-appearance order.
func normalizePermissions(permissions []domain.Permission) ([]domain.Permission, error) {
	seen := make(map[domain.Permission]bool, len(permissions))
	normalized := make([]domain.Permission, 0, len(permissions))
	for _, p := range permissions {
		if !domain.ValidPermission(p) {
			return nil, ErrUnknownPermission
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		normalized = append(normalized, p)
	}
	return normalized, nil
}
