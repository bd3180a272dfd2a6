package identity

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
)

// EmployeeRepository defines the persistence operations for employees
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *Employee) error
	FindEmployeeByID(ctx context.Context, id int64) (*Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (*Employee, error)
	ListEmployees(ctx context.Context, opts shared.ListOptions) ([]Employee, error)
	UpdateEmployee(ctx context.Context, employee *Employee) (bool, error)
	DeleteEmployeeByID(ctx context.Context, id int64) (bool, error)

	// SyncRoles replaces the employee's roles with exactly roleIDs
	SyncRoles(ctx context.Context, employeeID int64, roleIDs []int64) error
	// ListRoles returns the roles assigned to the employee, with their permissions
	ListRoles(ctx context.Context, employeeID int64) ([]Role, error)
	// HasPermission reports whether any assigned role grants the named permission
	HasPermission(ctx context.Context, employeeID int64, permission string) (bool, error)
}
