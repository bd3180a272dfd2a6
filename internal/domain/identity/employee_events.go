package identity

import "github.com/shop/backend/internal/domain/shared"

// Aggregate type constant for Employee
const AggregateTypeEmployee = "Employee"

// Employee domain event types
const (
	EventTypeEmployeeCreated     = "EmployeeCreated"
	EventTypeEmployeeRolesSynced = "EmployeeRolesSynced"
)

// EmployeeCreatedEvent is published when an employee account is created
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewEmployeeCreatedEvent creates a new EmployeeCreatedEvent
func NewEmployeeCreatedEvent(e *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, AggregateTypeEmployee, e.ID),
		Name:            e.Name,
		Email:           e.Email,
	}
}

// EmployeeRolesSyncedEvent is published when an employee's roles are replaced
type EmployeeRolesSyncedEvent struct {
	shared.BaseDomainEvent
	Roles []string `json:"roles"`
}

// NewEmployeeRolesSyncedEvent creates a new EmployeeRolesSyncedEvent
func NewEmployeeRolesSyncedEvent(e *Employee) *EmployeeRolesSyncedEvent {
	return &EmployeeRolesSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeRolesSynced, AggregateTypeEmployee, e.ID),
		Roles:           e.RoleNames(),
	}
}
