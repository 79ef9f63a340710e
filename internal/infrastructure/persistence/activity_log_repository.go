package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// GormActivityLogRepository implements ActivityLogRepository using
// GORM. The log is append-only; there is no update or delete path.
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Append writes a new log entry
func (r *GormActivityLogRepository) Append(ctx context.Context, entry *audit.ActivityLog) error {
	model := models.ActivityLogModelFromDomain(entry)
	return dbFor(ctx, r.db).Create(model).Error
}

// FindByEntity finds log entries for one entity, newest first
func (r *GormActivityLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.ActivityLogModel{}).
			Where("entity_type = ? AND entity_id = ?", entityType, entityID),
		filter,
	)
	return r.list(query, filter)
}

// FindAll finds log entries matching the filter, newest first
func (r *GormActivityLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.ActivityLog, error) {
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.ActivityLogModel{}), filter)
	return r.list(query, filter)
}

// Count counts log entries matching the filter
func (r *GormActivityLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.ActivityLogModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormActivityLogRepository) list(query *gorm.DB, filter shared.Filter) ([]audit.ActivityLog, error) {
	var logModels []models.ActivityLogModel
	query = applyListOptions(query, filter, ActivityLogSortFields, "occurred_at")
	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.ActivityLog, len(logModels))
	for i, model := range logModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// applyConditions applies field filters to the query
func (r *GormActivityLogRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "from":
			query = query.Where("occurred_at >= ?", value)
		case "to":
			query = query.Where("occurred_at < ?", value)
		}
	}
	return query
}

// Ensure GormActivityLogRepository implements ActivityLogRepository
var _ audit.ActivityLogRepository = (*GormActivityLogRepository)(nil)
