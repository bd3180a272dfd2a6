package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmployee(t *testing.T) *Employee {
	t.Helper()
	e, err := NewEmployee(EmployeeParams{
		Name:     "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	return e
}

func TestNewEmployee(t *testing.T) {
	t.Run("creates active employee with hashed password", func(t *testing.T) {
		e := newTestEmployee(t)

		assert.Equal(t, "Jane Doe", e.Name)
		assert.Equal(t, "jane@example.com", e.Email)
		assert.NotEqual(t, "secret-password", e.PasswordHash)
		assert.True(t, e.IsActive())
		assert.True(t, e.VerifyPassword("secret-password"))
		assert.False(t, e.VerifyPassword("wrong-password"))
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewEmployee(EmployeeParams{Name: "Jane", Email: "not-an-email", Password: "secret-password"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email format is invalid")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewEmployee(EmployeeParams{Name: "Jane", Email: "jane@example.com", Password: "short"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewEmployee(EmployeeParams{Name: " ", Email: "jane@example.com", Password: "secret-password"})
		require.Error(t, err)
	})
}

func TestEmployee_Update(t *testing.T) {
	e := newTestEmployee(t)
	oldHash := e.PasswordHash

	t.Run("keeps password when none given", func(t *testing.T) {
		require.NoError(t, e.Update(EmployeeParams{Name: "Jane Roe", Email: "jane.roe@example.com"}))
		assert.Equal(t, "Jane Roe", e.Name)
		assert.Equal(t, "jane.roe@example.com", e.Email)
		assert.Equal(t, oldHash, e.PasswordHash)
	})

	t.Run("rehashes new password", func(t *testing.T) {
		require.NoError(t, e.Update(EmployeeParams{Name: "Jane Roe", Email: "jane.roe@example.com", Password: "another-secret"}))
		assert.NotEqual(t, oldHash, e.PasswordHash)
		assert.True(t, e.VerifyPassword("another-secret"))
	})
}

func TestEmployee_SyncRoles(t *testing.T) {
	e := newTestEmployee(t)
	admin := Role{Name: "admin", Permissions: []Permission{{Name: "create-product"}, {Name: "update-order"}}}
	clerk := Role{Name: "clerk", Permissions: []Permission{{Name: "update-order"}}}

	e.SyncRoles([]Role{admin, clerk})

	assert.Equal(t, []string{"admin", "clerk"}, e.RoleNames())
	assert.ElementsMatch(t, []string{"create-product", "update-order"}, e.PermissionNames())

	events := e.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeEmployeeRolesSynced, events[0].EventType())
}

func TestEmployee_Status(t *testing.T) {
	e := newTestEmployee(t)
	e.Disable()
	assert.False(t, e.IsActive())
	e.Enable()
	assert.True(t, e.IsActive())
}
