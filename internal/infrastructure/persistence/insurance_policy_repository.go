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

// GormInsurancePolicyRepository implements InsurancePolicyRepository using GORM
type GormInsurancePolicyRepository struct {
	db *gorm.DB
}

// NewGormInsurancePolicyRepository creates a new GormInsurancePolicyRepository
func NewGormInsurancePolicyRepository(db *gorm.DB) *GormInsurancePolicyRepository {
	return &GormInsurancePolicyRepository{db: db}
}

// FindByID finds a policy by its ID
func (r *GormInsurancePolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.InsurancePolicy, error) {
	var model models.InsurancePolicyModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all policies matching the filter
func (r *GormInsurancePolicyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.InsurancePolicy, error) {
	var policyModels []models.InsurancePolicyModel
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.InsurancePolicyModel{}), filter)
	query = applyListOptions(query, filter, InsuranceSortFields, "expiry_date")

	if err := query.Find(&policyModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(policyModels), nil
}

// FindByProperty finds a property's policies, newest period first
func (r *GormInsurancePolicyRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]compliance.InsurancePolicy, error) {
	var policyModels []models.InsurancePolicyModel
	if err := dbFor(ctx, r.db).
		Where("property_id = ?", propertyID).
		Order("effective_date DESC").
		Find(&policyModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(policyModels), nil
}

// Save creates or updates a policy
func (r *GormInsurancePolicyRepository) Save(ctx context.Context, policy *compliance.InsurancePolicy) error {
	model := models.InsurancePolicyModelFromDomain(policy)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a policy
func (r *GormInsurancePolicyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.InsurancePolicyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts policies matching the filter
func (r *GormInsurancePolicyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.InsurancePolicyModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInsurancePolicyRepository) toDomainSlice(policyModels []models.InsurancePolicyModel) []compliance.InsurancePolicy {
	policies := make([]compliance.InsurancePolicy, len(policyModels))
	for i, model := range policyModels {
		policies[i] = *model.ToDomain()
	}
	return policies
}

// applyConditions applies search and field filters to the query
func (r *GormInsurancePolicyRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("carrier ILIKE ? OR policy_number ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "carrier":
			query = query.Where("carrier = ?", value)
		}
	}
	return query
}

// Ensure GormInsurancePolicyRepository implements InsurancePolicyRepository
var _ compliance.InsurancePolicyRepository = (*GormInsurancePolicyRepository)(nil)
