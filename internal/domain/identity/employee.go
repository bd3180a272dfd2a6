package identity

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// EmployeeStatus represents whether an employee may sign in
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusDisabled EmployeeStatus = "disabled"
)

// Employee is a back-office user. Capabilities come from assigned roles.
type Employee struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Status       EmployeeStatus
	Roles        []Role
}

// EmployeeParams carries the writable fields of an employee.
// An empty Password leaves the existing hash untouched on update.
type EmployeeParams struct {
	Name     string
	Email    string
	Password string
}

// NewEmployee creates a new active employee with a hashed password
func NewEmployee(params EmployeeParams) (*Employee, error) {
	if err := shared.ValidatePersonName(params.Name); err != nil {
		return nil, err
	}
	if err := shared.ValidateEmail(params.Email); err != nil {
		return nil, err
	}
	hash, err := shared.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(params.Name),
		Email:             shared.NormalizeEmail(params.Email),
		PasswordHash:      hash,
		Status:            EmployeeStatusActive,
		Roles:             make([]Role, 0),
	}, nil
}

// Update replaces name and email, and the password when one is given
func (e *Employee) Update(params EmployeeParams) error {
	if err := shared.ValidatePersonName(params.Name); err != nil {
		return err
	}
	if err := shared.ValidateEmail(params.Email); err != nil {
		return err
	}
	if params.Password != "" {
		hash, err := shared.HashPassword(params.Password)
		if err != nil {
			return err
		}
		e.PasswordHash = hash
	}

	e.Name = strings.TrimSpace(params.Name)
	e.Email = shared.NormalizeEmail(params.Email)
	e.Touch()
	return nil
}

// Disable prevents the employee from signing in
func (e *Employee) Disable() {
	e.Status = EmployeeStatusDisabled
	e.Touch()
}

// Enable allows the employee to sign in again
func (e *Employee) Enable() {
	e.Status = EmployeeStatusActive
	e.Touch()
}

// IsActive reports whether the employee may sign in
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

// VerifyPassword checks a plain password against the stored hash
func (e *Employee) VerifyPassword(password string) bool {
	return shared.CheckPassword(e.PasswordHash, password)
}

// SyncRoles replaces the assigned roles and records the change
func (e *Employee) SyncRoles(roles []Role) {
	e.Roles = roles
	e.Touch()
	e.AddDomainEvent(NewEmployeeRolesSyncedEvent(e))
}

// RoleNames returns the names of the assigned roles
func (e *Employee) RoleNames() []string {
	names := make([]string, 0, len(e.Roles))
	for _, r := range e.Roles {
		names = append(names, r.Name)
	}
	return names
}

// PermissionNames returns the distinct permission names granted by all roles
func (e *Employee) PermissionNames() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range e.Roles {
		for _, p := range r.Permissions {
			if _, ok := seen[p.Name]; ok {
				continue
			}
			seen[p.Name] = struct{}{}
			names = append(names, p.Name)
		}
	}
	return names
}
