/**
 * @description
 * Domain models for the role and permission console. Permissions form a static
 * taxonomy; a role is a named set of granted permissions that agents are
 * assigned to.
 */
package domain

import "time"

// Permission is a single grantable capability of the back-office.
type Permission string

const (
	PermAccountsRead   Permission = "accounts:read"
	PermAccountsWrite  Permission = "accounts:write"
	PermAccountsDelete Permission = "accounts:delete"
	PermAccountsStatus Permission = "accounts:status"
	PermRolesManage    Permission = "roles:manage"
	PermFeesRead       Permission = "fees:read"
	PermDashboardRead  Permission = "dashboard:read"
)

// AllPermissions is the static taxonomy the console renders toggles for.
var AllPermissions = []Permission{
	PermAccountsRead,
	PermAccountsWrite,
	PermAccountsDelete,
	PermAccountsStatus,
	PermRolesManage,
	PermFeesRead,
	PermDashboardRead,
}

// ValidPermission reports whether p belongs to the taxonomy.
func ValidPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

// Role is a named permission set.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// HasPermission reports whether the role grants p.
func (r *Role) HasPermission(p Permission) bool {
	for _, granted := range r.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}

// AdminUser is a back-office agent able to sign in to the dashboard.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	RoleID       string    `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
}
