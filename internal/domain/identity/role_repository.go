package identity

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
)

// RoleRepository defines the persistence operations for roles
type RoleRepository interface {
	CreateRole(ctx context.Context, params RoleParams) (*Role, error)
	FindRoleByID(ctx context.Context, id int64) (*Role, error)
	FindRoleByName(ctx context.Context, name string) (*Role, error)
	FindRolesByIDs(ctx context.Context, ids []int64) ([]Role, error)
	ListRoles(ctx context.Context, opts shared.ListOptions) ([]Role, error)
	UpdateRole(ctx context.Context, id int64, params RoleParams) (bool, error)
	DeleteRoleByID(ctx context.Context, id int64) (bool, error)

	// AttachPermissions grants ids in addition to the role's current permissions
	AttachPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	// SyncPermissions replaces the role's permissions with exactly ids
	SyncPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	// ListPermissions returns the permissions granted to the role
	ListPermissions(ctx context.Context, roleID int64) ([]Permission, error)
}
