package shipping

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// Province is a first-level administrative area of a country
type Province struct {
	shared.BaseEntity
	Name      string
	CountryID int64
	Cities    []City
}

// City belongs to a province
type City struct {
	shared.BaseEntity
	Name       string
	ProvinceID int64
}

// ProvinceParams carries the writable fields of a province
type ProvinceParams struct {
	Name      string
	CountryID int64
}

// Validate checks the params against the province rules
func (p ProvinceParams) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_PROVINCE_NAME", "Province name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_PROVINCE_NAME", "Province name cannot exceed 100 characters")
	}
	if p.CountryID <= 0 {
		return shared.NewDomainError("INVALID_PROVINCE_COUNTRY", "Province must belong to a country")
	}
	return nil
}
