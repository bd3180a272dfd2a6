package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPermissionRepository implements identity.PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// CreatePermission validates params and inserts a permission
func (r *GormPermissionRepository) CreatePermission(ctx context.Context, params identity.PermissionParams) (*identity.Permission, error) {
	perm, err := identity.NewPermission(params)
	if err != nil {
		return nil, err
	}
	m := &models.PermissionModel{}
	m.FromDomain(perm)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindPermissionByID finds a permission by ID
func (r *GormPermissionRepository) FindPermissionByID(ctx context.Context, id int64) (*identity.Permission, error) {
	var m models.PermissionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindPermissionsByIDs returns the permissions whose IDs are in ids
func (r *GormPermissionRepository) FindPermissionsByIDs(ctx context.Context, ids []int64) ([]identity.Permission, error) {
	if len(ids) == 0 {
		return []identity.Permission{}, nil
	}
	var ms []models.PermissionModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return permissionsToDomain(ms), nil
}

// ListPermissions lists permissions ordered by opts
func (r *GormPermissionRepository) ListPermissions(ctx context.Context, opts shared.ListOptions) ([]identity.Permission, error) {
	var ms []models.PermissionModel
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.PermissionModel{}), opts, PermissionSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return permissionsToDomain(ms), nil
}

// CountPermissions counts all permissions
func (r *GormPermissionRepository) CountPermissions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PermissionModel{}).Count(&count).Error
	return count, err
}

// UpdatePermission updates a permission. Returns false when no row matched.
func (r *GormPermissionRepository) UpdatePermission(ctx context.Context, id int64, params identity.PermissionParams) (bool, error) {
	if err := params.Validate(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Model(&models.PermissionModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":         strings.TrimSpace(params.Name),
		"display_name": strings.TrimSpace(params.DisplayName),
		"description":  params.Description,
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeletePermissionByID deletes a permission and detaches it from roles
func (r *GormPermissionRepository) DeletePermissionByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PermissionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func permissionsToDomain(ms []models.PermissionModel) []identity.Permission {
	out := make([]identity.Permission, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out
}

var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)
