package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

func testPermissions(names ...string) []identity.Permission {
	out := make([]identity.Permission, len(names))
	for i, n := range names {
		out[i] = identity.Permission{Name: n}
		out[i].ID = int64(i + 1)
	}
	return out
}

func TestRoleService_Create(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleRepository)
	perms := new(MockPermissionRepository)
	pub := new(MockEventPublisher)
	svc := NewRoleService(roles, perms, pub, nil)

	created := &identity.Role{Name: "clerk"}
	created.ID = 5
	perms.On("FindPermissionsByIDs", ctx, []int64{1, 2}).Return(testPermissions("manage-orders", "manage-products"), nil)
	roles.On("CreateRole", ctx, identity.RoleParams{Name: "clerk"}).Return(created, nil)
	roles.On("AttachPermissions", ctx, int64(5), []int64{1, 2}).Return(nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return assert.ObjectsAreEqual([]string{identity.EventTypeRoleCreated}, eventTypes(events))
	})).Return(nil)

	resp, err := svc.Create(ctx, RoleRequest{Name: "clerk", PermissionIDs: []int64{2, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Len(t, resp.Permissions, 2)
	roles.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestRoleService_CreateRejectsUnknownPermission(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleRepository)
	perms := new(MockPermissionRepository)
	svc := NewRoleService(roles, perms, nil, nil)

	perms.On("FindPermissionsByIDs", ctx, []int64{1, 9}).Return(testPermissions("manage-orders"), nil)

	_, err := svc.Create(ctx, RoleRequest{Name: "clerk", PermissionIDs: []int64{1, 9}})
	assert.ErrorIs(t, err, ErrUnknownPermission)
	roles.AssertNotCalled(t, "CreateRole", mock.Anything, mock.Anything)
}

func TestRoleService_SyncPermissions(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleRepository)
	perms := new(MockPermissionRepository)
	pub := new(MockEventPublisher)
	svc := NewRoleService(roles, perms, pub, nil)

	role := &identity.Role{Name: "admin", Permissions: testPermissions("view-dashboard")}
	role.ID = 2
	roles.On("FindRoleByID", ctx, int64(2)).Return(role, nil)
	perms.On("FindPermissionsByIDs", ctx, []int64{2, 3}).Return(testPermissions("manage-roles", "manage-employees"), nil)
	roles.On("SyncPermissions", ctx, int64(2), []int64{2, 3}).Return(nil)
	pub.On("Publish", ctx, mock.Anything).Return(nil)

	resp, err := svc.SyncPermissions(ctx, 2, []int64{3, 2})
	require.NoError(t, err)
	names := []string{resp.Permissions[0].Name, resp.Permissions[1].Name}
	assert.ElementsMatch(t, []string{"manage-roles", "manage-employees"}, names)

	events := pub.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	assert.Equal(t, []string{identity.EventTypeRolePermissionsChanged}, eventTypes(events))
}

func TestRoleService_SyncPermissionsToEmpty(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleRepository)
	perms := new(MockPermissionRepository)
	svc := NewRoleService(roles, perms, nil, nil)

	role := &identity.Role{Name: "clerk", Permissions: testPermissions("manage-orders")}
	role.ID = 3
	roles.On("FindRoleByID", ctx, int64(3)).Return(role, nil)
	roles.On("SyncPermissions", ctx, int64(3), []int64(nil)).Return(nil)

	resp, err := svc.SyncPermissions(ctx, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.Permissions)
	perms.AssertNotCalled(t, "FindPermissionsByIDs", mock.Anything, mock.Anything)
}

func TestRoleService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	roles := new(MockRoleRepository)
	svc := NewRoleService(roles, new(MockPermissionRepository), nil, nil)

	roles.On("UpdateRole", ctx, int64(8), identity.RoleParams{Name: "ghost"}).Return(false, nil)
	_, err := svc.Update(ctx, 8, RoleRequest{Name: "ghost"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	updated := &identity.Role{Name: "clerk", DisplayName: "Clerk"}
	updated.ID = 3
	roles.On("UpdateRole", ctx, int64(3), identity.RoleParams{Name: "clerk", DisplayName: "Clerk"}).Return(true, nil)
	roles.On("FindRoleByID", ctx, int64(3)).Return(updated, nil)
	resp, err := svc.Update(ctx, 3, RoleRequest{Name: "clerk", DisplayName: "Clerk"})
	require.NoError(t, err)
	assert.Equal(t, "Clerk", resp.DisplayName)

	roles.On("DeleteRoleByID", ctx, int64(3)).Return(true, nil)
	assert.NoError(t, svc.Delete(ctx, 3))
}
