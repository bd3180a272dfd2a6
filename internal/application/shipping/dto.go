package shipping

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/shipping"
)

// CourierRequest creates or replaces a courier
type CourierRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=1000"`
	URL         string          `json:"url" binding:"omitempty,url"`
	IsFree      bool            `json:"is_free"`
	Cost        decimal.Decimal `json:"cost"`
	Status      *bool           `json:"status"`
}

func (r CourierRequest) params() shipping.CourierParams {
	status := true
	if r.Status != nil {
		status = *r.Status
	}
	return shipping.CourierParams{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
		IsFree:      r.IsFree,
		Cost:        r.Cost,
		Status:      status,
	}
}

// CourierResponse represents a courier in API responses
type CourierResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	URL         string          `json:"url,omitempty"`
	IsFree      bool            `json:"is_free"`
	Cost        decimal.Decimal `json:"cost"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Status      bool            `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToCourierResponse converts a domain courier
func ToCourierResponse(c *shipping.Courier) CourierResponse {
	return CourierResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		URL:         c.URL,
		IsFree:      c.IsFree,
		Cost:        c.Cost,
		ShippingFee: c.ShippingFee(),
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCourierResponses converts a slice of domain couriers
func ToCourierResponses(cs []shipping.Courier) []CourierResponse {
	out := make([]CourierResponse, len(cs))
	for i := range cs {
		out[i] = ToCourierResponse(&cs[i])
	}
	return out
}

// ProvinceRequest renames a province or moves it to another country
type ProvinceRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	CountryID int64  `json:"country_id" binding:"required,gt=0"`
}

// ProvinceResponse represents a province in API responses
type ProvinceResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	CountryID int64          `json:"country_id"`
	Cities    []CityResponse `json:"cities,omitempty"`
}

// CityResponse represents a city in API responses
type CityResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ProvinceID int64  `json:"province_id"`
}

// ToProvinceResponse converts a domain province
func ToProvinceResponse(p *shipping.Province) ProvinceResponse {
	resp := ProvinceResponse{ID: p.ID, Name: p.Name, CountryID: p.CountryID}
	if len(p.Cities) > 0 {
		resp.Cities = ToCityResponses(p.Cities)
	}
	return resp
}

// ToProvinceResponses converts a slice of domain provinces
func ToProvinceResponses(ps []shipping.Province) []ProvinceResponse {
	out := make([]ProvinceResponse, len(ps))
	for i := range ps {
		out[i] = ToProvinceResponse(&ps[i])
	}
	return out
}

// ToCityResponses converts a slice of domain cities
func ToCityResponses(cs []shipping.City) []CityResponse {
	out := make([]CityResponse, len(cs))
	for i, c := range cs {
		out[i] = CityResponse{ID: c.ID, Name: c.Name, ProvinceID: c.ProvinceID}
	}
	return out
}
