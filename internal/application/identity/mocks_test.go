package identity

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) CreatePermission(ctx context.Context, params identity.PermissionParams) (*identity.Permission, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) FindPermissionByID(ctx context.Context, id int64) (*identity.Permission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) FindPermissionsByIDs(ctx context.Context, ids []int64) ([]identity.Permission, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) ListPermissions(ctx context.Context, opts shared.ListOptions) ([]identity.Permission, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]identity.Permission), args.Error(1)
}

func (m *MockPermissionRepository) CountPermissions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPermissionRepository) UpdatePermission(ctx context.Context, id int64, params identity.PermissionParams) (bool, error) {
	args := m.Called(ctx, id, params)
	return args.Bool(0), args.Error(1)
}

func (m *MockPermissionRepository) DeletePermissionByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) CreateRole(ctx context.Context, params identity.RoleParams) (*identity.Role, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, id int64) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRoleByName(ctx context.Context, name string) (*identity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindRolesByIDs(ctx context.Context, ids []int64) ([]identity.Role, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context, opts shared.ListOptions) ([]identity.Role, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, id int64, params identity.RoleParams) (bool, error) {
	args := m.Called(ctx, id, params)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) DeleteRoleByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoleRepository) AttachPermissions(ctx context.Context, roleID int64, ids []int64) error {
	return m.Called(ctx, roleID, ids).Error(0)
}

func (m *MockRoleRepository) SyncPermissions(ctx context.Context, roleID int64, ids []int64) error {
	return m.Called(ctx, roleID, ids).Error(0)
}

func (m *MockRoleRepository) ListPermissions(ctx context.Context, roleID int64) ([]identity.Permission, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).([]identity.Permission), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) CreateEmployee(ctx context.Context, e *identity.Employee) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil {
		e.ID = 42
	}
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, id int64) (*identity.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*identity.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, opts shared.ListOptions) ([]identity.Employee, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]identity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, e *identity.Employee) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) DeleteEmployeeByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) SyncRoles(ctx context.Context, employeeID int64, roleIDs []int64) error {
	return m.Called(ctx, employeeID, roleIDs).Error(0)
}

func (m *MockEmployeeRepository) ListRoles(ctx context.Context, employeeID int64) ([]identity.Role, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]identity.Role), args.Error(1)
}

func (m *MockEmployeeRepository) HasPermission(ctx context.Context, employeeID int64, permission string) (bool, error) {
	args := m.Called(ctx, employeeID, permission)
	return args.Bool(0), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 7
	}
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, opts shared.ListOptions) ([]customer.Customer, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, c *customer.Customer) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) DeleteCustomerByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindAddresses(ctx context.Context, customerID int64) ([]customer.Address, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]customer.Address), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) RevokeSubject(ctx context.Context, subject string, ttl time.Duration) error {
	return m.Called(ctx, subject, ttl).Error(0)
}

// eventTypes extracts the event types passed to Publish
func eventTypes(events []shared.DomainEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType()
	}
	return out
}
