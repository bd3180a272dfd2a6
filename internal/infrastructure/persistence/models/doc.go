// Package models contains the GORM persistence models that map to database tables.
// They are kept apart from the domain entities so the domain layer stays free of
// ORM tags. Each model converts to and from its entity with ToDomain / FromDomain.
//
// Files:
//   - base.go: BaseModel shared by every table with an autoincrement id
//   - identity.go: permissions, roles, employees and their pivot tables
//   - customer.go: customers and addresses
//   - catalog.go: products
//   - shipping.go: couriers, provinces and cities
//   - sales.go: orders and order products
package models
