// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence model shared by all tables
// - json.go: JSON column helper for embedded collections
// - portfolio.go: Owner, Property, Tenant and Lease models
// - ledger.go: Payment and Expense models
// - billing.go: Property-manager bill model
// - ops.go: PM task and rehab project models
// - compliance.go: City notice, property tax and insurance models
// - audit.go: Activity log model and its details codec
package models
