package compliance

import (
	"context"

	"github.com/google/uuid"

	"github.com/propertyops/backend/internal/domain/shared"
)

// CityNoticeRepository persists city notices
type CityNoticeRepository interface {
	shared.Repository[CityNotice]
	// FindOutstanding returns notices that are not resolved.
	FindOutstanding(ctx context.Context) ([]CityNotice, error)
}

// PropertyTaxRepository persists property tax records
type PropertyTaxRepository interface {
	shared.Repository[PropertyTax]
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]PropertyTax, error)
}

// InsurancePolicyRepository persists insurance policies
type InsurancePolicyRepository interface {
	shared.Repository[InsurancePolicy]
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]InsurancePolicy, error)
}
