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

// GormOwnerRepository implements OwnerRepository using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID finds an owner by its ID
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Owner, error) {
	var model models.OwnerModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all owners matching the filter
func (r *GormOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Owner, error) {
	var ownerModels []models.OwnerModel
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.OwnerModel{}), filter)
	query = applyListOptions(query, filter, OwnerSortFields, "name")

	if err := query.Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]portfolio.Owner, len(ownerModels))
	for i, model := range ownerModels {
		owners[i] = *model.ToDomain()
	}
	return owners, nil
}

// Save creates or updates an owner
func (r *GormOwnerRepository) Save(ctx context.Context, owner *portfolio.Owner) error {
	model := models.OwnerModelFromDomain(owner)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes an owner
func (r *GormOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.OwnerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts owners matching the filter
func (r *GormOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.OwnerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyConditions applies search and field filters to the query
func (r *GormOwnerRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_email ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "name":
			query = query.Where("name = ?", value)
		}
	}
	return query
}

// Ensure GormOwnerRepository implements OwnerRepository
var _ portfolio.OwnerRepository = (*GormOwnerRepository)(nil)
