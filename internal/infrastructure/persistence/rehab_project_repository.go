package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/ops"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// GormRehabProjectRepository implements RehabProjectRepository using GORM
type GormRehabProjectRepository struct {
	db *gorm.DB
}

// NewGormRehabProjectRepository creates a new GormRehabProjectRepository
func NewGormRehabProjectRepository(db *gorm.DB) *GormRehabProjectRepository {
	return &GormRehabProjectRepository{db: db}
}

// FindByID finds a rehab project by its ID
func (r *GormRehabProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*ops.RehabProject, error) {
	var model models.RehabProjectModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all rehab projects matching the filter
func (r *GormRehabProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ops.RehabProject, error) {
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.RehabProjectModel{}), filter)
	return r.list(query, filter)
}

// FindByProperty finds rehab projects on a property
func (r *GormRehabProjectRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ops.RehabProject, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.RehabProjectModel{}).Where("property_id = ?", propertyID),
		filter,
	)
	return r.list(query, filter)
}

// Save creates or updates a rehab project
func (r *GormRehabProjectRepository) Save(ctx context.Context, project *ops.RehabProject) error {
	model := models.RehabProjectModelFromDomain(project)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a rehab project
func (r *GormRehabProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.RehabProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts rehab projects matching the filter
func (r *GormRehabProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.RehabProjectModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRehabProjectRepository) list(query *gorm.DB, filter shared.Filter) ([]ops.RehabProject, error) {
	var projectModels []models.RehabProjectModel
	query = applyListOptions(query, filter, RehabSortFields, "created_at")
	if err := query.Find(&projectModels).Error; err != nil {
		return nil, err
	}

	projects := make([]ops.RehabProject, len(projectModels))
	for i, model := range projectModels {
		projects[i] = *model.ToDomain()
	}
	return projects, nil
}

// applyConditions applies search and field filters to the query
func (r *GormRehabProjectRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("scope ILIKE ?", searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		}
	}
	return query
}

// Ensure GormRehabProjectRepository implements RehabProjectRepository
var _ ops.RehabProjectRepository = (*GormRehabProjectRepository)(nil)
