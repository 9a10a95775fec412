/**
 * @description
 * Data access layer for roles and admin users, backed by PostgreSQL.
 */
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharibank/backoffice-service/internal/domain"
)

// RoleRepository handles database operations for roles.
type RoleRepository struct {
	db *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

// ListRoles returns every role, newest first.
func (r *RoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, permissions, created_at, updated_at
		FROM roles
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

// GetRoleByID returns one role, or nil when it does not exist.
func (r *RoleRepository) GetRoleByID(ctx context.Context, id string) (*domain.Role, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, description, permissions, created_at, updated_at
		FROM roles
		WHERE id = $1`, id)

	role, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return role, nil
}

// CreateRole inserts a new role and fills in its generated fields.
func (r *RoleRepository) CreateRole(ctx context.Context, role *domain.Role) error {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	role.CreatedAt = now
	role.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO roles (id, name, description, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		role.ID, role.Name, role.Description, permissionStrings(role.Permissions), role.CreatedAt, role.UpdatedAt)
	return err
}

// UpdateRole persists the role's name, description and permission set.
func (r *RoleRepository) UpdateRole(ctx context.Context, role *domain.Role) error {
	role.UpdatedAt = time.Now().UTC()
	_, err := r.db.Exec(ctx, `
		UPDATE roles
		SET name = $2, description = $3, permissions = $4, updated_at = $5
		WHERE id = $1`,
		role.ID, role.Name, role.Description, permissionStrings(role.Permissions), role.UpdatedAt)
	return err
}

// DeleteRole removes a role and reports whether a row was deleted.
func (r *RoleRepository) DeleteRole(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func permissionStrings(permissions []domain.Permission) []string {
	out := make([]string, len(permissions))
	for i, p := range permissions {
		out[i] = string(p)
	}
	return out
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	var permissions []string
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &permissions, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	role.Permissions = make([]domain.Permission, len(permissions))
	for i, p := range permissions {
		role.Permissions[i] = domain.Permission(p)
	}
	return &role, nil
}

// AdminUserRepository handles database operations for back-office agents.
type AdminUserRepository struct {
	db *pgxpool.Pool
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *pgxpool.Pool) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// FindAdminByEmail returns the agent with the given email, or nil.
func (r *AdminUserRepository) FindAdminByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	return r.findAdmin(ctx, `
		SELECT id, email, full_name, password_hash, COALESCE(role_id::text, ''), created_at
		FROM admin_users
		WHERE email = $1`, email)
}

// FindAdminByID returns the agent with the given id, or nil.
func (r *AdminUserRepository) FindAdminByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	return r.findAdmin(ctx, `
		SELECT id, email, full_name, password_hash, COALESCE(role_id::text, ''), created_at
		FROM admin_users
		WHERE id = $1`, id)
}

func (r *AdminUserRepository) findAdmin(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	var user domain.AdminUser
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.RoleID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
