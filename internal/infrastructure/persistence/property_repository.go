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

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID finds a property by its ID
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	var model models.PropertyModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Property, error) {
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PropertyModel{}), filter)
	return r.list(query, filter)
}

// FindByOwner finds properties belonging to an owner
func (r *GormPropertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.PropertyModel{}).Where("owner_id = ?", ownerID),
		filter,
	)
	return r.list(query, filter)
}

// FindByStatus finds properties in the given status
func (r *GormPropertyRepository) FindByStatus(ctx context.Context, status portfolio.PropertyStatus, filter shared.Filter) ([]portfolio.Property, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.PropertyModel{}).Where("status = ?", status),
		filter,
	)
	return r.list(query, filter)
}

// CountByOwner counts properties belonging to an owner
func (r *GormPropertyRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).
		Model(&models.PropertyModel{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a property
func (r *GormPropertyRepository) Save(ctx context.Context, property *portfolio.Property) error {
	model := models.PropertyModelFromDomain(property)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a property
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts properties matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PropertyModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPropertyRepository) list(query *gorm.DB, filter shared.Filter) ([]portfolio.Property, error) {
	var propertyModels []models.PropertyModel
	query = applyListOptions(query, filter, PropertySortFields, "address_text")
	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]portfolio.Property, len(propertyModels))
	for i, model := range propertyModels {
		properties[i] = *model.ToDomain()
	}
	return properties, nil
}

// applyConditions applies search and field filters to the query
func (r *GormPropertyRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("address_text ILIKE ?", searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "owner_id":
			query = query.Where("owner_id = ?", value)
		}
	}
	return query
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ portfolio.PropertyRepository = (*GormPropertyRepository)(nil)
