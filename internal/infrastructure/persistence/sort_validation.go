package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/shop/backend/internal/domain/shared"
)

// sortFields is the set of columns a listing may be ordered by. Only
// members of the set ever reach ORDER BY.
type sortFields map[string]struct{}

func newSortFields(columns ...string) sortFields {
	s := sortFields{"id": {}, "created_at": {}, "updated_at": {}}
	for _, c := range columns {
		s[c] = struct{}{}
	}
	return s
}

// column returns field when whitelisted, otherwise "id"
func (s sortFields) column(field string) string {
	field = strings.TrimSpace(field)
	if _, ok := s[field]; ok {
		return field
	}
	return "id"
}

// sortDirection is ASC only when asked for, DESC otherwise
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// applyListOptions adds a whitelisted ORDER BY and optional paging to query
func applyListOptions(query *gorm.DB, opts shared.ListOptions, allowed sortFields) *gorm.DB {
	query = query.Order(allowed.column(opts.OrderBy) + " " + sortDirection(opts.Sort))
	if opts.PageSize > 0 {
		query = query.Limit(opts.PageSize).Offset(opts.Offset())
	}
	return query
}

var (
	PermissionSortFields = newSortFields("name", "display_name")
	RoleSortFields       = newSortFields("name", "display_name")
	EmployeeSortFields   = newSortFields("name", "email", "status")
	CustomerSortFields   = newSortFields("name", "email", "status")
	AddressSortFields    = newSortFields("alias", "city", "zip", "customer_id", "status")
	CourierSortFields    = newSortFields("name", "cost", "is_free", "status")
	ProvinceSortFields   = newSortFields("name", "country_id")
	ProductSortFields    = newSortFields("sku", "name", "slug", "price", "quantity", "status")
	OrderSortFields      = newSortFields("reference", "status", "total", "customer_id", "paid_at")
)
