package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shop/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add orders table", "add_orders_table"},
		{"Add-Orders-Table", "add_orders_table"},
		{"ADD__ORDERS", "add_orders"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "special_chars"},
		{"_leading_and_trailing_", "leading_and_trailing"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add coupons", "Coupons table")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_coupons.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_coupons.down.sql"), first.DownPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- add_coupons")
	assert.Contains(t, string(content), "-- Coupons table")

	second, err := CreateMigration(dir, "Add coupon codes", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
	assert.FileExists(t, second.DownPath)
}

func TestCreateMigration_Errors(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := CreateMigration(t.TempDir(), "***", "")
		assert.Error(t, err)
	})

	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")
		mf, err := CreateMigration(dir, "init", "")
		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
	})
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_orders.up.sql",
		"000002_orders.down.sql",
		"000001_identity.up.sql",
		"000010_seed.up.sql",
		"README.md",
		"abc_orders.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

	list, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, Migration{Version: 1, Name: "identity"}, list[0])
	assert.Equal(t, Migration{Version: 2, Name: "orders", HasDown: true}, list[1])
	assert.Equal(t, 10, list[2].Version)

	missing, err := ListMigrations(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		match := migrationFileRegex.FindStringSubmatch(e.Name())
		require.NotNil(t, match, "unexpected file %s", e.Name())
		if match[3] == "up" {
			ups[match[1]] = true
		} else {
			downs[match[1]] = true
		}
	}
	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs, "every migration needs an up and a down file")

	source, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
