package portfolio

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// OwnerRepository persists owners and their bank accounts
type OwnerRepository interface {
	shared.Repository[Owner]
}

// PropertyRepository persists properties
type PropertyRepository interface {
	shared.Repository[Property]
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Property, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	FindByStatus(ctx context.Context, status PropertyStatus, filter shared.Filter) ([]Property, error)
}

// TenantRepository persists tenants
type TenantRepository interface {
	shared.Repository[Tenant]
}

// LeaseRepository persists leases
type LeaseRepository interface {
	shared.Repository[Lease]
	FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]Lease, error)
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]Lease, error)
	CountActiveByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountActiveByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
}
