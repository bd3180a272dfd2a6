package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// CreateRole validates params and inserts a role
func (r *GormRoleRepository) CreateRole(ctx context.Context, params identity.RoleParams) (*identity.Role, error) {
	role, err := identity.NewRole(params)
	if err != nil {
		return nil, err
	}
	m := &models.RoleModel{}
	m.FromDomain(role)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindRoleByID finds a role by ID with its permissions loaded
func (r *GormRoleRepository) FindRoleByID(ctx context.Context, id int64) (*identity.Role, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindRoleByName finds a role by name, case-insensitively
func (r *GormRoleRepository) FindRoleByName(ctx context.Context, name string) (*identity.Role, error) {
	return r.findOne(ctx, "LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
}

func (r *GormRoleRepository) findOne(ctx context.Context, query string, args ...any) (*identity.Role, error) {
	var m models.RoleModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	role := m.ToDomain()
	perms, err := r.ListPermissions(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return role, nil
}

// FindRolesByIDs returns the roles whose IDs are in ids, without permissions
func (r *GormRoleRepository) FindRolesByIDs(ctx context.Context, ids []int64) ([]identity.Role, error) {
	if len(ids) == 0 {
		return []identity.Role{}, nil
	}
	var ms []models.RoleModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return rolesToDomain(ms), nil
}

// ListRoles lists roles ordered by opts
func (r *GormRoleRepository) ListRoles(ctx context.Context, opts shared.ListOptions) ([]identity.Role, error) {
	var ms []models.RoleModel
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.RoleModel{}), opts, RoleSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return rolesToDomain(ms), nil
}

// UpdateRole updates a role. Returns false when no row matched.
func (r *GormRoleRepository) UpdateRole(ctx context.Context, id int64, params identity.RoleParams) (bool, error) {
	if err := params.Validate(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Model(&models.RoleModel{}).Where("id = ?", id).Updates(map[string]any{
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

// DeleteRoleByID deletes a role together with its pivot rows
func (r *GormRoleRepository) DeleteRoleByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&models.EmployeeRoleModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.RoleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// AttachPermissions grants permissionIDs to the role, ignoring ones it already has
func (r *GormRoleRepository) AttachPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	rows := rolePermissionRows(roleID, permissionIDs)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// SyncPermissions replaces the role's permissions with exactly permissionIDs
func (r *GormRoleRepository) SyncPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}
		rows := rolePermissionRows(roleID, permissionIDs)
		return tx.Create(&rows).Error
	})
}

// ListPermissions returns the permissions granted to the role
func (r *GormRoleRepository) ListPermissions(ctx context.Context, roleID int64) ([]identity.Permission, error) {
	var ms []models.PermissionModel
	err := r.db.WithContext(ctx).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return permissionsToDomain(ms), nil
}

func rolePermissionRows(roleID int64, permissionIDs []int64) []models.RolePermissionModel {
	now := time.Now()
	seen := make(map[int64]bool, len(permissionIDs))
	rows := make([]models.RolePermissionModel, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		if seen[pid] {
			continue
		}
		seen[pid] = true
		rows = append(rows, models.RolePermissionModel{RoleID: roleID, PermissionID: pid, CreatedAt: now})
	}
	return rows
}

func rolesToDomain(ms []models.RoleModel) []identity.Role {
	out := make([]identity.Role, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
