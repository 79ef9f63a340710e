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

// GormPmTaskRepository implements PmTaskRepository using GORM
type GormPmTaskRepository struct {
	db *gorm.DB
}

// NewGormPmTaskRepository creates a new GormPmTaskRepository
func NewGormPmTaskRepository(db *gorm.DB) *GormPmTaskRepository {
	return &GormPmTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormPmTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*ops.PmTask, error) {
	var model models.PmTaskModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tasks matching the filter
func (r *GormPmTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ops.PmTask, error) {
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PmTaskModel{}), filter)
	return r.list(query, filter)
}

// FindByStatus finds tasks in the given status
func (r *GormPmTaskRepository) FindByStatus(ctx context.Context, status ops.TaskStatus, filter shared.Filter) ([]ops.PmTask, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.PmTaskModel{}).Where("status = ?", status),
		filter,
	)
	return r.list(query, filter)
}

// FindAcknowledged finds tasks carrying an acknowledgement timestamp
func (r *GormPmTaskRepository) FindAcknowledged(ctx context.Context) ([]ops.PmTask, error) {
	var taskModels []models.PmTaskModel
	if err := dbFor(ctx, r.db).
		Where("acknowledged_at IS NOT NULL").
		Order("acknowledged_at ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(taskModels), nil
}

// Save creates or updates a task
func (r *GormPmTaskRepository) Save(ctx context.Context, task *ops.PmTask) error {
	model := models.PmTaskModelFromDomain(task)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a task
func (r *GormPmTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.PmTaskModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tasks matching the filter
func (r *GormPmTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PmTaskModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPmTaskRepository) list(query *gorm.DB, filter shared.Filter) ([]ops.PmTask, error) {
	var taskModels []models.PmTaskModel
	query = applyListOptions(query, filter, TaskSortFields, "created_at")
	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(taskModels), nil
}

func (r *GormPmTaskRepository) toDomainSlice(taskModels []models.PmTaskModel) []ops.PmTask {
	tasks := make([]ops.PmTask, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks
}

// applyConditions applies search and field filters to the query
func (r *GormPmTaskRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		}
	}
	return query
}

// Ensure GormPmTaskRepository implements PmTaskRepository
var _ ops.PmTaskRepository = (*GormPmTaskRepository)(nil)
