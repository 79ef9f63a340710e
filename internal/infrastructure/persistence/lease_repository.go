package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Lease, error) {
	var model models.LeaseModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all leases matching the filter
func (r *GormLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Lease, error) {
	var leaseModels []models.LeaseModel
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.LeaseModel{}), filter)
	query = applyListOptions(query, filter, LeaseSortFields, "start_date")

	if err := query.Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(leaseModels), nil
}

// FindActiveByProperty finds active leases on a property
func (r *GormLeaseRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]portfolio.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := dbFor(ctx, r.db).
		Where("property_id = ? AND status = ?", propertyID, portfolio.LeaseStatusActive).
		Order("start_date DESC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(leaseModels), nil
}

// FindActiveByTenant finds active leases held by a tenant
func (r *GormLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]portfolio.Lease, error) {
	var leaseModels []models.LeaseModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND status = ?", tenantID, portfolio.LeaseStatusActive).
		Order("start_date DESC").
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(leaseModels), nil
}

// CountActiveByTenant counts a tenant's active leases
func (r *GormLeaseRepository) CountActiveByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).
		Model(&models.LeaseModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, portfolio.LeaseStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByProperty counts a property's active leases
func (r *GormLeaseRepository) CountActiveByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).
		Model(&models.LeaseModel{}).
		Where("property_id = ? AND status = ?", propertyID, portfolio.LeaseStatusActive).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, lease *portfolio.Lease) error {
	model := models.LeaseModelFromDomain(lease)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a lease
func (r *GormLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.LeaseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts leases matching the filter
func (r *GormLeaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.LeaseModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLeaseRepository) toDomainSlice(leaseModels []models.LeaseModel) []portfolio.Lease {
	leases := make([]portfolio.Lease, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = *model.ToDomain()
	}
	return leases
}

// applyConditions applies field filters to the query
func (r *GormLeaseRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		}
	}
	return query
}

// Ensure GormLeaseRepository implements LeaseRepository
var _ portfolio.LeaseRepository = (*GormLeaseRepository)(nil)
