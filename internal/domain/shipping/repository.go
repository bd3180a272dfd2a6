package shipping

import (
	"context"

	"github.com/shop/backend/internal/domain/shared"
)

// CourierRepository defines the persistence operations for couriers
type CourierRepository interface {
	CreateCourier(ctx context.Context, params CourierParams) (*Courier, error)
	FindCourierByID(ctx context.Context, id int64) (*Courier, error)
	ListCouriers(ctx context.Context, opts shared.ListOptions) ([]Courier, error)
	UpdateCourier(ctx context.Context, id int64, params CourierParams) (bool, error)
	DeleteCourierByID(ctx context.Context, id int64) (bool, error)
}

// ProvinceRepository defines the persistence operations for provinces and their cities
type ProvinceRepository interface {
	// ListProvinces lists provinces ordered by the order column in sort direction.
	// Empty values mean "id" and "desc".
	ListProvinces(ctx context.Context, order, sort string) ([]Province, error)
	FindProvinceByID(ctx context.Context, id int64) (*Province, error)
	UpdateProvince(ctx context.Context, id int64, params ProvinceParams) (bool, error)
	ListCities(ctx context.Context, provinceID int64) ([]City, error)
}
