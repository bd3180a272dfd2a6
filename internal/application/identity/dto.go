package identity

import (
	"time"

	"github.com/shop/backend/internal/domain/identity"
)

// PermissionRequest creates or replaces a permission
type PermissionRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	DisplayName string `json:"display_name" binding:"max=200"`
	Description string `json:"description" binding:"max=1000"`
}

func (r PermissionRequest) params() identity.PermissionParams {
	return identity.PermissionParams{Name: r.Name, DisplayName: r.DisplayName, Description: r.Description}
}

// PermissionResponse represents a permission in API responses
type PermissionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPermissionResponse converts a domain permission
func ToPermissionResponse(p *identity.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPermissionResponses converts a slice of domain permissions
func ToPermissionResponses(ps []identity.Permission) []PermissionResponse {
	out := make([]PermissionResponse, len(ps))
	for i := range ps {
		out[i] = ToPermissionResponse(&ps[i])
	}
	return out
}

// RoleRequest creates or replaces a role. PermissionIDs, when present,
// replace the role's permissions.
type RoleRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	DisplayName   string  `json:"display_name" binding:"max=200"`
	Description   string  `json:"description" binding:"max=1000"`
	PermissionIDs []int64 `json:"permission_ids" binding:"omitempty,dive,gt=0"`
}

func (r RoleRequest) params() identity.RoleParams {
	return identity.RoleParams{Name: r.Name, DisplayName: r.DisplayName, Description: r.Description}
}

// SyncPermissionsRequest replaces the permissions of a role
type SyncPermissionsRequest struct {
	PermissionIDs []int64 `json:"permission_ids" binding:"dive,gt=0"`
}

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	DisplayName string               `json:"display_name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToRoleResponse converts a domain role
func ToRoleResponse(r *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Permissions: ToPermissionResponses(r.Permissions),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToRoleResponses converts a slice of domain roles
func ToRoleResponses(rs []identity.Role) []RoleResponse {
	out := make([]RoleResponse, len(rs))
	for i := range rs {
		out[i] = ToRoleResponse(&rs[i])
	}
	return out
}

// CreateEmployeeRequest creates an employee, optionally with roles
type CreateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	RoleIDs  []int64 `json:"role_ids" binding:"omitempty,dive,gt=0"`
}

// UpdateEmployeeRequest updates an employee. An empty password keeps the
// current one; Status switches between active and disabled.
type UpdateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=100"`
	Email    string  `json:"email" binding:"required,email,max=255"`
	Password string  `json:"password" binding:"omitempty,min=8,max=72"`
	Status   *string `json:"status" binding:"omitempty,oneof=active disabled"`
}

// SyncRolesRequest replaces the roles of an employee
type SyncRolesRequest struct {
	RoleIDs []int64 `json:"role_ids" binding:"dive,gt=0"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee
func ToEmployeeResponse(e *identity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		Status:      string(e.Status),
		Roles:       e.RoleNames(),
		Permissions: e.PermissionNames(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain employees
func ToEmployeeResponses(es []identity.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(es))
	for i := range es {
		out[i] = ToEmployeeResponse(&es[i])
	}
	return out
}

// LoginRequest is an email and password sign-in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterCustomerRequest signs a new customer up
type RegisterCustomerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	SubjectType string    `json:"subject_type"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions,omitempty"`
}
