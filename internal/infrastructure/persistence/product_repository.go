package persistence

import (
	"context"
	"strings"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// CreateProduct inserts the product and sets its ID
func (r *GormProductRepository) CreateProduct(ctx context.Context, product *catalog.Product) error {
	m := &models.ProductModel{}
	m.FromDomain(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	product.ID = m.ID
	return nil
}

// FindProductByID finds a product by ID
func (r *GormProductRepository) FindProductByID(ctx context.Context, id int64) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindProductBySlug finds a product by its URL slug
func (r *GormProductRepository) FindProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "slug = ?", slug).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindProductsByIDs returns the products whose IDs are in ids
func (r *GormProductRepository) FindProductsByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var ms []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return productsToDomain(ms), nil
}

// ListProducts lists products matching filter
func (r *GormProductRepository) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	var ms []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	query = applyListOptions(query, filter.ListOptions, ProductSortFields)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return productsToDomain(ms), nil
}

// CountProducts counts products matching filter, ignoring paging
func (r *GormProductRepository) CountProducts(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter catalog.ProductFilter) *gorm.DB {
	if filter.ActiveOnly {
		query = query.Where("status = ?", catalog.ProductStatusActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	return query
}

// UpdateProduct writes every mutable column of the product
func (r *GormProductRepository) UpdateProduct(ctx context.Context, product *catalog.Product) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("id = ?", product.ID).Updates(map[string]any{
		"sku":         product.SKU,
		"name":        product.Name,
		"slug":        product.Slug,
		"description": product.Description,
		"cover":       product.Cover,
		"quantity":    product.Quantity,
		"price":       product.Price,
		"status":      product.Status,
		"updated_at":  product.UpdatedAt,
	})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteProductByID deletes a product
func (r *GormProductRepository) DeleteProductByID(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecreaseQuantity takes qty units out of stock in a single conditional
// update, so concurrent checkouts cannot drive stock negative.
func (r *GormProductRepository) DecreaseQuantity(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT_QUANTITY", "Quantity must be positive")
	}
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if _, err := r.FindProductByID(ctx, id); err != nil {
		return err
	}
	return shared.ErrInsufficientStock
}

func productsToDomain(ms []models.ProductModel) []catalog.Product {
	out := make([]catalog.Product, 0, len(ms))
	for i := range ms {
		out = append(out, *ms[i].ToDomain())
	}
	return out
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
