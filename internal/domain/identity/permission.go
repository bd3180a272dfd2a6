package identity

import (
	"regexp"
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

var permissionNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_.:-]*$`)

// Permissions seeded by the migrations and checked by the admin routes
const (
	PermViewDashboard     = "view-dashboard"
	PermManagePermissions = "manage-permissions"
	PermManageRoles       = "manage-roles"
	PermManageEmployees   = "manage-employees"
	PermManageCustomers   = "manage-customers"
	PermManageProducts    = "manage-products"
	PermManageCouriers    = "manage-couriers"
	PermManageProvinces   = "manage-provinces"
	PermManageOrders      = "manage-orders"
)

// Permission is a named capability that can be granted to roles,
// e.g. "create-product" or "update-order"
type Permission struct {
	shared.BaseEntity
	Name        string
	DisplayName string
	Description string
}

// PermissionParams carries the writable fields of a permission
type PermissionParams struct {
	Name        string
	DisplayName string
	Description string
}

// Validate checks the params against the permission rules
func (p PermissionParams) Validate() error {
	if err := validatePermissionName(p.Name); err != nil {
		return err
	}
	if len(p.DisplayName) > 200 {
		return shared.NewDomainError("INVALID_PERMISSION_DISPLAY_NAME", "Permission display name cannot exceed 200 characters")
	}
	return nil
}

// NewPermission creates a new permission
func NewPermission(params PermissionParams) (*Permission, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Permission{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(params.Name),
		DisplayName: strings.TrimSpace(params.DisplayName),
		Description: params.Description,
	}, nil
}

// Update replaces the permission's writable fields
func (p *Permission) Update(params PermissionParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(params.Name)
	p.DisplayName = strings.TrimSpace(params.DisplayName)
	p.Description = params.Description
	p.Touch()
	return nil
}

func validatePermissionName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PERMISSION_NAME", "Permission name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_PERMISSION_NAME", "Permission name cannot exceed 100 characters")
	}
	if !permissionNameRegex.MatchString(name) {
		return shared.NewDomainError("INVALID_PERMISSION_NAME", "Permission name must start with a lowercase letter and contain only lowercase letters, numbers, '-', '_', '.' or ':'")
	}
	return nil
}
