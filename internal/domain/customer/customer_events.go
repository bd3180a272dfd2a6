package customer

import "github.com/shop/backend/internal/domain/shared"

// Aggregate type constant for Customer
const AggregateTypeCustomer = "Customer"

// EventTypeCustomerRegistered is published when a shopper signs up
const EventTypeCustomerRegistered = "CustomerRegistered"

// CustomerRegisteredEvent is published when a shopper signs up
type CustomerRegisteredEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCustomerRegisteredEvent creates a new CustomerRegisteredEvent
func NewCustomerRegisteredEvent(c *Customer) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRegistered, AggregateTypeCustomer, c.ID),
		Name:            c.Name,
		Email:           c.Email,
	}
}
