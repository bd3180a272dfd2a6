package models

import (
	"time"

	"github.com/shop/backend/internal/domain/identity"
)

// PermissionModel is the persistence model for identity.Permission
type PermissionModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(200)"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}

// ToDomain converts the model to a domain Permission
func (m *PermissionModel) ToDomain() *identity.Permission {
	return &identity.Permission{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Description: m.Description,
	}
}

// FromDomain populates the model from a domain Permission
func (m *PermissionModel) FromDomain(p *identity.Permission) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.DisplayName = p.DisplayName
	m.Description = p.Description
}

// RoleModel is the persistence model for identity.Role.
// Permissions are loaded separately through role_permissions.
type RoleModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(200)"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the model to a domain Role
func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		Name:              m.Name,
		DisplayName:       m.DisplayName,
		Description:       m.Description,
		Permissions:       make([]identity.Permission, 0),
	}
}

// FromDomain populates the model from a domain Role
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.DisplayName = r.DisplayName
	m.Description = r.Description
}

// RolePermissionModel is the role to permission pivot
type RolePermissionModel struct {
	RoleID       int64     `gorm:"primaryKey"`
	PermissionID int64     `gorm:"primaryKey;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// EmployeeModel is the persistence model for identity.Employee
type EmployeeModel struct {
	BaseModel
	Name         string                  `gorm:"type:varchar(100);not null"`
	Email        string                  `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string                  `gorm:"type:varchar(255);not null"`
	Status       identity.EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain Employee. Roles are loaded separately.
func (m *EmployeeModel) ToDomain() *identity.Employee {
	return &identity.Employee{
		BaseAggregateRoot: aggregateRoot(m.BaseModel),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Status:            m.Status,
		Roles:             make([]identity.Role, 0),
	}
}

// FromDomain populates the model from a domain Employee
func (m *EmployeeModel) FromDomain(e *identity.Employee) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Name = e.Name
	m.Email = e.Email
	m.PasswordHash = e.PasswordHash
	m.Status = e.Status
}

// EmployeeRoleModel is the employee to role pivot
type EmployeeRoleModel struct {
	EmployeeID int64     `gorm:"primaryKey"`
	RoleID     int64     `gorm:"primaryKey;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EmployeeRoleModel) TableName() string {
	return "employee_roles"
}
