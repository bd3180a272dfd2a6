package models

import (
	"time"

	"github.com/shop/backend/internal/domain/shared"
)

// BaseModel provides the common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to the domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from the domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

func aggregateRoot(m BaseModel) shared.BaseAggregateRoot {
	root := shared.NewBaseAggregateRoot()
	root.BaseEntity = m.ToDomain()
	return root
}

// All returns every model in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&PermissionModel{},
		&RoleModel{},
		&RolePermissionModel{},
		&EmployeeModel{},
		&EmployeeRoleModel{},
		&CustomerModel{},
		&ProvinceModel{},
		&CityModel{},
		&AddressModel{},
		&CourierModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderProductModel{},
	}
}
