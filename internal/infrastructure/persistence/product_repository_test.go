package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestProduct(t *testing.T, repo *GormProductRepository, sku, name string, qty int, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductParams{
		SKU: sku, Name: name, Quantity: qty, Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	require.NoError(t, repo.CreateProduct(context.Background(), p))
	return p
}

func TestGormProductRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	mug := createTestProduct(t, repo, "mug-01", "Café Mug", 5, "12.99")
	tee := createTestProduct(t, repo, "TEE-01", "Logo Tee", 0, "19.99")

	t.Run("find by slug", func(t *testing.T) {
		found, err := repo.FindProductBySlug(ctx, "cafe-mug")
		require.NoError(t, err)
		assert.Equal(t, mug.ID, found.ID)
		assert.Equal(t, "MUG-01", found.SKU)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("12.99")))
	})

	t.Run("duplicate sku", func(t *testing.T) {
		dup, err := catalog.NewProduct(catalog.ProductParams{SKU: "MUG-01", Name: "Other Mug", Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.CreateProduct(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("search and active filter", func(t *testing.T) {
		list, err := repo.ListProducts(ctx, catalog.ProductFilter{ListOptions: shared.DefaultListOptions(), Search: "tee"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, tee.ID, list[0].ID)

		require.NoError(t, tee.Update(catalog.ProductParams{SKU: tee.SKU, Name: tee.Name, Price: tee.Price, Status: catalog.ProductStatusInactive}))
		ok, err := repo.UpdateProduct(ctx, tee)
		require.NoError(t, err)
		assert.True(t, ok)

		count, err := repo.CountProducts(ctx, catalog.ProductFilter{ActiveOnly: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("paging", func(t *testing.T) {
		list, err := repo.ListProducts(ctx, catalog.ProductFilter{ListOptions: shared.ListOptions{OrderBy: "price", Sort: "asc", Page: 2, PageSize: 1}})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, tee.ID, list[0].ID)
	})

	t.Run("decrease quantity", func(t *testing.T) {
		require.NoError(t, repo.DecreaseQuantity(ctx, mug.ID, 2))
		found, err := repo.FindProductByID(ctx, mug.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, found.Quantity)

		assert.ErrorIs(t, repo.DecreaseQuantity(ctx, mug.ID, 4), shared.ErrInsufficientStock)
		assert.ErrorIs(t, repo.DecreaseQuantity(ctx, 9999, 1), shared.ErrNotFound)
		assert.Error(t, repo.DecreaseQuantity(ctx, mug.ID, 0))
	})

	t.Run("find by ids and delete", func(t *testing.T) {
		list, err := repo.FindProductsByIDs(ctx, []int64{mug.ID, tee.ID, 9999})
		require.NoError(t, err)
		assert.Len(t, list, 2)

		ok, err := repo.DeleteProductByID(ctx, tee.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = repo.DeleteProductByID(ctx, tee.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGormProductRepository_FindProductByID_Postgres(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(gormDB)

	t.Run("maps record not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(42), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindProductByID(context.Background(), 42)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("maps row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "sku", "name", "slug", "quantity", "price", "status"}).
			AddRow(7, "MUG-01", "Mug", "mug", 3, "12.99", "active")
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(int64(7), 1).
			WillReturnRows(rows)

		p, err := repo.FindProductByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, "MUG-01", p.SKU)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("12.99")))
		assert.True(t, p.IsActive())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
