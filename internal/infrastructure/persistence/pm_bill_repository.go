package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/billing"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// GormPmBillRepository implements PmBillRepository using GORM
type GormPmBillRepository struct {
	db *gorm.DB
}

// NewGormPmBillRepository creates a new GormPmBillRepository
func NewGormPmBillRepository(db *gorm.DB) *GormPmBillRepository {
	return &GormPmBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormPmBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PmBill, error) {
	var model models.PmBillModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all bills matching the filter
func (r *GormPmBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PmBill, error) {
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PmBillModel{}), filter)
	return r.list(query, filter)
}

// FindByProperty finds bills charged against a property
func (r *GormPmBillRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]billing.PmBill, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.PmBillModel{}).Where("property_id = ?", propertyID),
		filter,
	)
	return r.list(query, filter)
}

// FindByStatus finds bills in the given status
func (r *GormPmBillRepository) FindByStatus(ctx context.Context, status billing.BillStatus, filter shared.Filter) ([]billing.PmBill, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.PmBillModel{}).Where("status = ?", status),
		filter,
	)
	return r.list(query, filter)
}

// Save creates or updates a bill
func (r *GormPmBillRepository) Save(ctx context.Context, bill *billing.PmBill) error {
	model := models.PmBillModelFromDomain(bill)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes a bill
func (r *GormPmBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.PmBillModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts bills matching the filter
func (r *GormPmBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.PmBillModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPmBillRepository) list(query *gorm.DB, filter shared.Filter) ([]billing.PmBill, error) {
	var billModels []models.PmBillModel
	query = applyListOptions(query, filter, BillSortFields, "bill_date")
	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]billing.PmBill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// applyConditions applies search and field filters to the query
func (r *GormPmBillRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("vendor ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "vendor":
			query = query.Where("vendor = ?", value)
		case "from":
			query = query.Where("bill_date >= ?", value)
		case "to":
			query = query.Where("bill_date < ?", value)
		}
	}
	return query
}

// Ensure GormPmBillRepository implements PmBillRepository
var _ billing.PmBillRepository = (*GormPmBillRepository)(nil)
