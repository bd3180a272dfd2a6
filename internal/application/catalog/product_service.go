package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/logger"
)

const defaultPageSize = 20

// ProductService handles catalog management and storefront browsing
type ProductService struct {
	repo      catalog.ProductRepository
	covers    CoverStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. covers and publisher may be nil.
func NewProductService(repo catalog.ProductRepository, covers CoverStorage, publisher shared.EventPublisher, l *zap.Logger) *ProductService {
	if l == nil {
		l = zap.NewNop()
	}
	return &ProductService{repo: repo, covers: covers, publisher: publisher, logger: l.Named("products")}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.params())
	if err != nil {
		return nil, err
	}

	// Slugs must be unique, SKUs are enforced by the database
	if err := s.ensureSlugFree(ctx, p.Slug, 0); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	p.AddDomainEvent(catalog.NewProductCreatedEvent(p))
	s.publish(ctx, p)

	logger.Enrich(ctx, s.logger).Info("Product created", zap.Int64("product_id", p.ID), zap.String("sku", p.SKU))
	return s.toResponse(ctx, p), nil
}

// GetByID returns a product
func (s *ProductService) GetByID(ctx context.Context, id int64) (*ProductResponse, error) {
	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p), nil
}

// GetBySlug returns an active product for the storefront
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	p, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, shared.ErrNotFound
	}
	return s.toResponse(ctx, p), nil
}

// List returns one page of products. activeOnly restricts the listing to
// products shown in the shop.
func (s *ProductService) List(ctx context.Context, f ProductListFilter, activeOnly bool) (*shared.Paginated[ProductResponse], error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	filter := catalog.ProductFilter{
		ListOptions: shared.ListOptions{OrderBy: f.OrderBy, Sort: f.Sort, Page: f.Page, PageSize: f.PageSize},
		Search:      f.Search,
		ActiveOnly:  activeOnly,
	}

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = *s.toResponse(ctx, &products[i])
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// Update replaces a product's writable fields
func (s *ProductService) Update(ctx context.Context, id int64, req ProductRequest) (*ProductResponse, error) {
	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.params()); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, p.Slug, id); err != nil {
		return nil, err
	}

	ok, err := s.repo.UpdateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}
	s.publish(ctx, p)

	logger.Enrich(ctx, s.logger).Info("Product updated", zap.Int64("product_id", id))
	return s.toResponse(ctx, p), nil
}

// Delete removes a product and its cover image
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.repo.DeleteProductByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}

	if p.Cover != "" && s.covers != nil {
		if err := s.covers.Delete(ctx, p.Cover); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to delete product cover", zap.String("key", p.Cover), zap.Error(err))
		}
	}
	logger.Enrich(ctx, s.logger).Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug string, selfID int64) error {
	existing, err := s.repo.FindProductBySlug(ctx, slug)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrSlugTaken
	}
	return nil
}

func (s *ProductService) toResponse(ctx context.Context, p *catalog.Product) *ProductResponse {
	resp := ToProductResponse(p)
	if p.Cover != "" && s.covers != nil {
		url, err := s.covers.URL(ctx, p.Cover)
		if err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to resolve cover URL", zap.String("key", p.Cover), zap.Error(err))
		} else {
			resp.CoverURL = url
		}
	}
	return &resp
}

func (s *ProductService) publish(ctx context.Context, p *catalog.Product) {
	events := p.PullDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish product events", zap.Error(err))
	}
}

// ErrSlugTaken is returned when another product uses the slug
var ErrSlugTaken = shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
