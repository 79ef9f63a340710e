package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/compliance"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// GormPropertyTaxRepository implements PropertyTaxRepository using GORM
type GormPropertyTaxRepository struct {
	db *gorm.DB
}

// NewGormPropertyTaxRepository creates a new GormPropertyTaxRepository
func NewGormPropertyTaxRepository(db *gorm.DB) *GormPropertyTaxRepository {
	return &GormPropertyTaxRepository{db: db}
}

// FindByID finds a tax record by its ID
func (r *GormPropertyTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.PropertyTax, error) {
	var model models.PropertyTaxModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tax records matching the filter
func (r *GormPropertyTaxRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.PropertyTax, error) {
	var taxModels []models.PropertyTaxModel
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PropertyTaxModel{}), filter)
	query = applyListOptions(query, filter, TaxSortFields, "tax_year")

	if err := query.Find(&taxModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(taxModels), nil
}

// FindByProperty finds a property's tax records, most recent year first
func (r *GormPropertyTaxRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]compliance.PropertyTax, error) {
	var taxModels []models.PropertyTaxModel
	if err := dbFor(ctx, r.db).
		Where("property_id = ?", propertyID).
		Order("tax_year DESC").
		Find(&taxModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(taxModels), nil
}

// Save creates or updates a tax record
func (r *GormPropertyTaxRepository) Save(ctx context.Context, tax *compliance.PropertyTax) error {
	model := models.PropertyTaxModelFromDomain(tax)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a tax record
func (r *GormPropertyTaxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.PropertyTaxModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tax records matching the filter
func (r *GormPropertyTaxRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PropertyTaxModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPropertyTaxRepository) toDomainSlice(taxModels []models.PropertyTaxModel) []compliance.PropertyTax {
	taxes := make([]compliance.PropertyTax, len(taxModels))
	for i, model := range taxModels {
		taxes[i] = *model.ToDomain()
	}
	return taxes
}

// applyConditions applies field filters to the query
func (r *GormPropertyTaxRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "tax_year":
			query = query.Where("tax_year = ?", value)
		case "paid":
			query = query.Where("paid = ?", value)
		}
	}
	return query
}

// Ensure GormPropertyTaxRepository implements PropertyTaxRepository
var _ compliance.PropertyTaxRepository = (*GormPropertyTaxRepository)(nil)
