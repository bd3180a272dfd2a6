package shipping

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/shipping"
)

// ProvinceService exposes provinces and their cities
type ProvinceService struct {
	repo shipping.ProvinceRepository
}

// NewProvinceService creates a new ProvinceService
func NewProvinceService(repo shipping.ProvinceRepository) *ProvinceService {
	return &ProvinceService{repo: repo}
}

// List returns provinces. Empty order and sort mean "id" and "desc".
func (s *ProvinceService) List(ctx context.Context, order, sort string) ([]ProvinceResponse, error) {
	ps, err := s.repo.ListProvinces(ctx, order, sort)
	if err != nil {
		return nil, err
	}
	return ToProvinceResponses(ps), nil
}

// GetByID returns a province
func (s *ProvinceService) GetByID(ctx context.Context, id int64) (*ProvinceResponse, error) {
	p, err := s.repo.FindProvinceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProvinceResponse(p)
	return &resp, nil
}

// Update renames a province
func (s *ProvinceService) Update(ctx context.Context, id int64, req ProvinceRequest) (*ProvinceResponse, error) {
	params := shipping.ProvinceParams{Name: req.Name, CountryID: req.CountryID}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ok, err := s.repo.UpdateProvince(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// ListCities returns the cities of a province
func (s *ProvinceService) ListCities(ctx context.Context, provinceID int64) ([]CityResponse, error) {
	if _, err := s.repo.FindProvinceByID(ctx, provinceID); err != nil {
		return nil, err
	}
	cs, err := s.repo.ListCities(ctx, provinceID)
	if err != nil {
		return nil, err
	}
	return ToCityResponses(cs), nil
}
