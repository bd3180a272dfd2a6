package identity

import (
	"regexp"
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

var roleNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Role groups permissions and is assigned to employees
type Role struct {
	shared.BaseAggregateRoot
	Name        string
	DisplayName string
	Description string
	Permissions []Permission
}

// RoleParams carries the writable fields of a role
type RoleParams struct {
	Name        string
	DisplayName string
	Description string
}

// Validate checks the params against the role rules
func (p RoleParams) Validate() error {
	return validateRoleName(p.Name)
}

// NewRole creates a new role without permissions
func NewRole(params RoleParams) (*Role, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(params.Name),
		DisplayName:       strings.TrimSpace(params.DisplayName),
		Description:       params.Description,
		Permissions:       make([]Permission, 0),
	}
	return role, nil
}

// Update replaces the role's writable fields
func (r *Role) Update(params RoleParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(params.Name)
	r.DisplayName = strings.TrimSpace(params.DisplayName)
	r.Description = params.Description
	r.Touch()

	r.AddDomainEvent(NewRoleUpdatedEvent(r))
	return nil
}

// SetPermissions replaces the granted permissions
func (r *Role) SetPermissions(permissions []Permission) {
	r.Permissions = permissions
	r.Touch()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
}

// HasPermission reports whether the role grants the named permission
func (r *Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PermissionNames returns the names of the granted permissions
func (r *Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot exceed 100 characters")
	}
	if !roleNameRegex.MatchString(name) {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name must start with a letter and contain only letters, numbers, '-' and '_'")
	}
	return nil
}
