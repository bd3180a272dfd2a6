package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

type employeeFixture struct {
	employees *MockEmployeeRepository
	roles     *MockRoleRepository
	publisher *MockEventPublisher
	revoker   *MockRevoker
	svc       *EmployeeService
}

func newEmployeeFixture() *employeeFixture {
	f := &employeeFixture{
		employees: new(MockEmployeeRepository),
		roles:     new(MockRoleRepository),
		publisher: new(MockEventPublisher),
		revoker:   new(MockRevoker),
	}
	f.svc = NewEmployeeService(f.employees, f.roles, f.publisher, f.revoker, time.Hour, nil)
	return f
}

func existingEmployee(t *testing.T, id int64) *identity.Employee {
	t.Helper()
	e, err := identity.NewEmployee(identity.EmployeeParams{Name: "Grace", Email: "grace@example.com", Password: "password123"})
	require.NoError(t, err)
	e.ID = id
	return e
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()

	clerk := identity.Role{Name: "clerk", Permissions: testPermissions("manage-orders")}
	clerk.ID = 3
	f.employees.On("FindEmployeeByEmail", ctx, "new@example.com").Return(nil, shared.ErrNotFound)
	f.roles.On("FindRolesByIDs", ctx, []int64{3}).Return([]identity.Role{clerk}, nil)
	f.employees.On("CreateEmployee", ctx, mock.AnythingOfType("*identity.Employee")).Return(nil)
	f.employees.On("SyncRoles", ctx, int64(42), []int64{3}).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := f.svc.Create(ctx, CreateEmployeeRequest{
		Name: "New Hire", Email: "new@example.com", Password: "password123", RoleIDs: []int64{3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, []string{"clerk"}, resp.Roles)
	assert.Equal(t, []string{"manage-orders"}, resp.Permissions)

	events := f.publisher.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	assert.Equal(t, []string{identity.EventTypeEmployeeCreated, identity.EventTypeEmployeeRolesSynced}, eventTypes(events))
	f.revoker.AssertNotCalled(t, "RevokeSubject", mock.Anything, mock.Anything, mock.Anything)
}

func TestEmployeeService_CreateEmailTaken(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()
	f.employees.On("FindEmployeeByEmail", ctx, "grace@example.com").Return(existingEmployee(t, 1), nil)

	_, err := f.svc.Create(ctx, CreateEmployeeRequest{Name: "Grace", Email: "grace@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmployeeEmailTaken)
	f.employees.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	disabled := "disabled"

	tests := []struct {
		name       string
		req        UpdateEmployeeRequest
		wantRevoke bool
		wantStatus string
	}{
		{
			name:       "profile change keeps tokens",
			req:        UpdateEmployeeRequest{Name: "Grace H", Email: "grace@example.com"},
			wantStatus: "active",
		},
		{
			name:       "password change revokes tokens",
			req:        UpdateEmployeeRequest{Name: "Grace", Email: "grace@example.com", Password: "another-password"},
			wantRevoke: true,
			wantStatus: "active",
		},
		{
			name:       "disable revokes tokens",
			req:        UpdateEmployeeRequest{Name: "Grace", Email: "grace@example.com", Status: &disabled},
			wantRevoke: true,
			wantStatus: "disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEmployeeFixture()
			e := existingEmployee(t, 4)
			f.employees.On("FindEmployeeByID", ctx, int64(4)).Return(e, nil)
			f.employees.On("FindEmployeeByEmail", ctx, "grace@example.com").Return(e, nil)
			f.employees.On("UpdateEmployee", ctx, e).Return(true, nil)
			f.revoker.On("RevokeSubject", ctx, "employee:4", time.Hour).Return(nil)

			resp, err := f.svc.Update(ctx, 4, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantRevoke {
				f.revoker.AssertCalled(t, "RevokeSubject", ctx, "employee:4", time.Hour)
			} else {
				f.revoker.AssertNotCalled(t, "RevokeSubject", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEmployeeService_UpdateEmailOfAnotherEmployee(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()
	f.employees.On("FindEmployeeByID", ctx, int64(4)).Return(existingEmployee(t, 4), nil)
	f.employees.On("FindEmployeeByEmail", ctx, "grace@example.com").Return(existingEmployee(t, 9), nil)

	_, err := f.svc.Update(ctx, 4, UpdateEmployeeRequest{Name: "Grace", Email: "grace@example.com"})
	assert.ErrorIs(t, err, ErrEmployeeEmailTaken)
}

func TestEmployeeService_SyncRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces roles and revokes tokens", func(t *testing.T) {
		f := newEmployeeFixture()
		admin := identity.Role{Name: "admin", Permissions: testPermissions("manage-roles")}
		admin.ID = 2
		f.employees.On("FindEmployeeByID", ctx, int64(4)).Return(existingEmployee(t, 4), nil)
		f.roles.On("FindRolesByIDs", ctx, []int64{2}).Return([]identity.Role{admin}, nil)
		f.employees.On("SyncRoles", ctx, int64(4), []int64{2}).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.revoker.On("RevokeSubject", ctx, "employee:4", time.Hour).Return(nil)

		resp, err := f.svc.SyncRoles(ctx, 4, []int64{2, 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"admin"}, resp.Roles)
		f.revoker.AssertExpectations(t)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		f := newEmployeeFixture()
		f.employees.On("FindEmployeeByID", ctx, int64(4)).Return(existingEmployee(t, 4), nil)
		f.roles.On("FindRolesByIDs", ctx, []int64{2, 77}).Return([]identity.Role{{Name: "admin"}}, nil)

		_, err := f.svc.SyncRoles(ctx, 4, []int64{77, 2})
		assert.ErrorIs(t, err, ErrUnknownRole)
		f.employees.AssertNotCalled(t, "SyncRoles", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newEmployeeFixture()
	f.employees.On("DeleteEmployeeByID", ctx, int64(4)).Return(true, nil)
	f.employees.On("DeleteEmployeeByID", ctx, int64(5)).Return(false, nil)
	f.revoker.On("RevokeSubject", ctx, "employee:4", time.Hour).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, 4))
	assert.ErrorIs(t, f.svc.Delete(ctx, 5), shared.ErrNotFound)
	f.revoker.AssertNumberOfCalls(t, "RevokeSubject", 1)
}
