package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermission(t *testing.T) {
	t.Run("creates permission with matching fields", func(t *testing.T) {
		params := PermissionParams{
			Name:        "create-product",
			DisplayName: "Create product",
			Description: "Allows creating catalog products",
		}

		p, err := NewPermission(params)
		require.NoError(t, err)
		assert.Equal(t, params.Name, p.Name)
		assert.Equal(t, params.DisplayName, p.DisplayName)
		assert.Equal(t, params.Description, p.Description)
		assert.True(t, p.IsNew())
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		p, err := NewPermission(PermissionParams{Name: " view-order ", DisplayName: " View order "})
		require.NoError(t, err)
		assert.Equal(t, "view-order", p.Name)
		assert.Equal(t, "View order", p.DisplayName)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewPermission(PermissionParams{Name: "  "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with invalid characters", func(t *testing.T) {
		_, err := NewPermission(PermissionParams{Name: "Create Product"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start with a lowercase letter")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewPermission(PermissionParams{Name: "a" + strings.Repeat("b", 100)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100 characters")
	})
}

func TestPermission_Update(t *testing.T) {
	p, err := NewPermission(PermissionParams{Name: "view-product"})
	require.NoError(t, err)
	before := p.UpdatedAt

	err = p.Update(PermissionParams{Name: "update-product", DisplayName: "Update product"})
	require.NoError(t, err)
	assert.Equal(t, "update-product", p.Name)
	assert.Equal(t, "Update product", p.DisplayName)
	assert.False(t, p.UpdatedAt.Before(before))

	err = p.Update(PermissionParams{Name: ""})
	require.Error(t, err)
	assert.Equal(t, "update-product", p.Name)
}
