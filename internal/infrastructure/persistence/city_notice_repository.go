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

// GormCityNoticeRepository implements CityNoticeRepository using GORM
type GormCityNoticeRepository struct {
	db *gorm.DB
}

// NewGormCityNoticeRepository creates a new GormCityNoticeRepository
func NewGormCityNoticeRepository(db *gorm.DB) *GormCityNoticeRepository {
	return &GormCityNoticeRepository{db: db}
}

// FindByID finds a notice by its ID
func (r *GormCityNoticeRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.CityNotice, error) {
	var model models.CityNoticeModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all notices matching the filter
func (r *GormCityNoticeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.CityNotice, error) {
	var noticeModels []models.CityNoticeModel
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.CityNoticeModel{}), filter)
	query = applyListOptions(query, filter, NoticeSortFields, "received_date")

	if err := query.Find(&noticeModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(noticeModels), nil
}

// FindOutstanding finds notices that are not resolved, ordered by
// deadline with undated notices last
func (r *GormCityNoticeRepository) FindOutstanding(ctx context.Context) ([]compliance.CityNotice, error) {
	var noticeModels []models.CityNoticeModel
	if err := dbFor(ctx, r.db).
		Where("status <> ?", compliance.NoticeStatusResolved).
		Order("deadline ASC NULLS LAST").
		Find(&noticeModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(noticeModels), nil
}

// Save creates or updates a notice
func (r *GormCityNoticeRepository) Save(ctx context.Context, notice *compliance.CityNotice) error {
	model := models.CityNoticeModelFromDomain(notice)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a notice
func (r *GormCityNoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.CityNoticeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts notices matching the filter
func (r *GormCityNoticeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.CityNoticeModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCityNoticeRepository) toDomainSlice(noticeModels []models.CityNoticeModel) []compliance.CityNotice {
	notices := make([]compliance.CityNotice, len(noticeModels))
	for i, model := range noticeModels {
		notices[i] = *model.ToDomain()
	}
	return notices
}

// applyConditions applies search and field filters to the query
func (r *GormCityNoticeRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		}
	}
	return query
}

// Ensure GormCityNoticeRepository implements CityNoticeRepository
var _ compliance.CityNoticeRepository = (*GormCityNoticeRepository)(nil)
