package persistence

import (
	"context"
	"time"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements identity.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// CreateEmployee inserts the employee and sets its ID
func (r *GormEmployeeRepository) CreateEmployee(ctx context.Context, employee *identity.Employee) error {
	m := &models.EmployeeModel{}
	m.FromDomain(employee)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	employee.ID = m.ID
	return nil
}

// FindEmployeeByID finds an employee with roles and their permissions loaded
func (r *GormEmployeeRepository) FindEmployeeByID(ctx context.Context, id int64) (*identity.Employee, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindEmployeeByEmail finds an employee by normalized email
func (r *GormEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*identity.Employee, error) {
	return r.findOne(ctx, "email = ?", shared.NormalizeEmail(email))
}

func (r *GormEmployeeRepository) findOne(ctx context.Context, query string, args ...any) (*identity.Employee, error) {
	var m models.EmployeeModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	employee := m.ToDomain()
	roles, err := r.ListRoles(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	employee.Roles = roles
	return employee, nil
}

// ListEmployees lists employees ordered by opts, without roles
func (r *GormEmployeeRepository) ListEmployees(ctx context.Context, opts shared.ListOptions) ([]identity.Employee, error) {
	var ms []models.EmployeeModel
	query := applyListOptions(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), opts, EmployeeSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]identity.Employee, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out, nil
}

// UpdateEmployee writes the employee's profile, hash and status
func (r *GormEmployeeRepository) UpdateEmployee(ctx context.Context, employee *identity.Employee) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Where("id = ?", employee.ID).Updates(map[string]any{
		"name":          employee.Name,
		"email":         employee.Email,
		"password_hash": employee.PasswordHash,
		"status":        employee.Status,
		"updated_at":    employee.UpdatedAt,
	})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteEmployeeByID deletes an employee and its role assignments
func (r *GormEmployeeRepository) DeleteEmployeeByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeRoleModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.EmployeeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// SyncRoles replaces the employee's roles with exactly roleIDs
func (r *GormEmployeeRepository) SyncRoles(ctx context.Context, employeeID int64, roleIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeRoleModel{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		now := time.Now()
		seen := make(map[int64]bool, len(roleIDs))
		rows := make([]models.EmployeeRoleModel, 0, len(roleIDs))
		for _, id := range roleIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, models.EmployeeRoleModel{EmployeeID: employeeID, RoleID: id, CreatedAt: now})
		}
		return tx.Create(&rows).Error
	})
}

// ListRoles returns the employee's roles with their permissions
func (r *GormEmployeeRepository) ListRoles(ctx context.Context, employeeID int64) ([]identity.Role, error) {
	var ms []models.RoleModel
	err := r.db.WithContext(ctx).
		Joins("JOIN employee_roles ON employee_roles.role_id = roles.id").
		Where("employee_roles.employee_id = ?", employeeID).
		Order("roles.name ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	roles := rolesToDomain(ms)
	roleRepo := NewGormRoleRepository(r.db)
	for i := range roles {
		perms, err := roleRepo.ListPermissions(ctx, roles[i].ID)
		if err != nil {
			return nil, err
		}
		roles[i].Permissions = perms
	}
	return roles, nil
}

// HasPermission reports whether any of the employee's roles grants permission
func (r *GormEmployeeRepository) HasPermission(ctx context.Context, employeeID int64, permission string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employee_roles").
		Joins("JOIN role_permissions ON role_permissions.role_id = employee_roles.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("employee_roles.employee_id = ? AND permissions.name = ?", employeeID, permission).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identity.EmployeeRepository = (*GormEmployeeRepository)(nil)
