package event

import (
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/customer"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/sales"
	"github.com/shop/backend/internal/domain/shared"
)

// RegisterAllEvents registers the shop's event types so that serialized
// events (for example Kafka messages) can be decoded again
func RegisterAllEvents(s *EventSerializer) {
	s.Register(sales.EventTypeOrderPlaced, func() shared.DomainEvent { return &sales.OrderPlacedEvent{} })
	s.Register(sales.EventTypeOrderPaid, func() shared.DomainEvent { return &sales.OrderPaidEvent{} })
	s.Register(sales.EventTypeOrderCancelled, func() shared.DomainEvent { return &sales.OrderCancelledEvent{} })
	s.Register(sales.EventTypeOrderStatusChanged, func() shared.DomainEvent { return &sales.OrderStatusChangedEvent{} })

	s.Register(catalog.EventTypeProductCreated, func() shared.DomainEvent { return &catalog.ProductCreatedEvent{} })
	s.Register(catalog.EventTypeProductUpdated, func() shared.DomainEvent { return &catalog.ProductUpdatedEvent{} })

	s.Register(customer.EventTypeCustomerRegistered, func() shared.DomainEvent { return &customer.CustomerRegisteredEvent{} })

	s.Register(identity.EventTypeEmployeeCreated, func() shared.DomainEvent { return &identity.EmployeeCreatedEvent{} })
	s.Register(identity.EventTypeEmployeeRolesSynced, func() shared.DomainEvent { return &identity.EmployeeRolesSyncedEvent{} })
	s.Register(identity.EventTypeRoleCreated, func() shared.DomainEvent { return &identity.RoleCreatedEvent{} })
	s.Register(identity.EventTypeRoleUpdated, func() shared.DomainEvent { return &identity.RoleUpdatedEvent{} })
	s.Register(identity.EventTypeRolePermissionsChanged, func() shared.DomainEvent { return &identity.RolePermissionsChangedEvent{} })
}
