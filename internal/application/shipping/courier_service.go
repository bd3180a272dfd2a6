package shipping

import (
	"context"

	"go.uber.org/zap"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
	"github.com/shop/backend/internal/infrastructure/logger"
)

// CourierService manages shipping methods
type CourierService struct {
	repo   shipping.CourierRepository
	logger *zap.Logger
}

// NewCourierService creates a new CourierService
func NewCourierService(repo shipping.CourierRepository, l *zap.Logger) *CourierService {
	if l == nil {
		l = zap.NewNop()
	}
	return &CourierService{repo: repo, logger: l.Named("couriers")}
}

// Create adds a courier
func (s *CourierService) Create(ctx context.Context, req CourierRequest) (*CourierResponse, error) {
	params := req.params()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	c, err := s.repo.CreateCourier(ctx, params)
	if err != nil {
		return nil, err
	}
	logger.Enrich(ctx, s.logger).Info("Courier created", zap.Int64("courier_id", c.ID), zap.String("name", c.Name))

	resp := ToCourierResponse(c)
	return &resp, nil
}

// GetByID returns a courier
func (s *CourierService) GetByID(ctx context.Context, id int64) (*CourierResponse, error) {
	c, err := s.repo.FindCourierByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCourierResponse(c)
	return &resp, nil
}

// List returns every courier ordered by opts
func (s *CourierService) List(ctx context.Context, opts shared.ListOptions) ([]CourierResponse, error) {
	cs, err := s.repo.ListCouriers(ctx, opts)
	if err != nil {
		return nil, err
	}
	return ToCourierResponses(cs), nil
}

// ListActive returns the couriers a shopper may choose from
func (s *CourierService) ListActive(ctx context.Context) ([]CourierResponse, error) {
	cs, err := s.repo.ListCouriers(ctx, shared.ListOptions{OrderBy: "id", Sort: "asc"})
	if err != nil {
		return nil, err
	}
	active := make([]CourierResponse, 0, len(cs))
	for i := range cs {
		if cs[i].Status {
			active = append(active, ToCourierResponse(&cs[i]))
		}
	}
	return active, nil
}

// Update replaces a courier
func (s *CourierService) Update(ctx context.Context, id int64, req CourierRequest) (*CourierResponse, error) {
	params := req.params()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ok, err := s.repo.UpdateCourier(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}
	logger.Enrich(ctx, s.logger).Info("Courier updated", zap.Int64("courier_id", id))
	return s.GetByID(ctx, id)
}

// Delete removes a courier
func (s *CourierService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.DeleteCourierByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	logger.Enrich(ctx, s.logger).Info("Courier deleted", zap.Int64("courier_id", id))
	return nil
}
