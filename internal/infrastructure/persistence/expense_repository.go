package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	var model models.ExpenseModel
	if err := dbFor(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Expense, error) {
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.ExpenseModel{}), filter)
	return r.list(query, filter)
}

// FindByProperty finds expenses recorded against a property
func (r *GormExpenseRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ledger.Expense, error) {
	query := r.applyConditions(
		dbFor(ctx, r.db).Model(&models.ExpenseModel{}).Where("property_id = ?", propertyID),
		filter,
	)
	return r.list(query, filter)
}

// CountByBill counts expenses generated from a PM bill
func (r *GormExpenseRepository) CountByBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).
		Model(&models.ExpenseModel{}).
		Where("bill_id = ?", billID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsFeeForPayment reports whether a management fee expense was
// already generated for the payment
func (r *GormExpenseRepository) ExistsFeeForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	var count int64
	if err := dbFor(ctx, r.db).
		Model(&models.ExpenseModel{}).
		Where("payment_id = ? AND source = ?", paymentID, ledger.ExpenseSourceAutoPmFee).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return dbFor(ctx, r.db).Save(model).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFor(ctx, r.db).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts expenses matching the filter
func (r *GormExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(dbFor(ctx, r.db).Model(&models.ExpenseModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormExpenseRepository) list(query *gorm.DB, filter shared.Filter) ([]ledger.Expense, error) {
	var expenseModels []models.ExpenseModel
	query = applyListOptions(query, filter, ExpenseSortFields, "expense_date")
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]ledger.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// applyConditions applies search and field filters to the query
func (r *GormExpenseRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("vendor ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "property_id":
			query = query.Where("property_id = ?", value)
		case "vendor":
			query = query.Where("vendor = ?", value)
		case "from":
			query = query.Where("expense_date >= ?", value)
		case "to":
			query = query.Where("expense_date < ?", value)
		}
	}
	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ ledger.ExpenseRepository = (*GormExpenseRepository)(nil)
