package identity

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
)

// PermissionRepository defines the persistence operations for permissions.
// Update and delete report whether a row was affected.
type PermissionRepository interface {
	CreatePermission(ctx context.Context, params PermissionParams) (*Permission, error)
	FindPermissionByID(ctx context.Context, id int64) (*Permission, error)
	FindPermissionsByIDs(ctx context.Context, ids []int64) ([]Permission, error)
	ListPermissions(ctx context.Context, opts shared.ListOptions) ([]Permission, error)
	CountPermissions(ctx context.Context) (int64, error)
	UpdatePermission(ctx context.Context, id int64, params PermissionParams) (bool, error)
	DeletePermissionByID(ctx context.Context, id int64) (bool, error)
}
