package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/shared"
)

func TestGormExpenseRepository_CountByBill(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	propertyID := uuid.New()
	billID := uuid.New()

	count, err := repo.CountByBill(ctx, billID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for _, amount := range []int64{200, 50} {
		expense, err := ledger.NewBillExpense(propertyID, billID, now, decimal.NewFromInt(amount), ledger.ExpenseCategoryMaintenanceRepairs, "Acme Property Mgmt", "", now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, expense))
	}

	// An expense from a different bill must not count.
	otherBillID := uuid.New()
	other, err := ledger.NewBillExpense(propertyID, otherBillID, now, decimal.NewFromInt(75), ledger.ExpenseCategoryUtilities, "Acme Property Mgmt", "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	count, err = repo.CountByBill(ctx, billID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormExpenseRepository_ExistsFeeForPayment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	propertyID := uuid.New()
	paymentID := uuid.New()

	exists, err := repo.ExistsFeeForPayment(ctx, paymentID)
	require.NoError(t, err)
	assert.False(t, exists)

	fee, err := ledger.NewManagementFeeExpense(propertyID, paymentID, now, decimal.NewFromInt(85), "Property Manager", "Management fee", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fee))

	exists, err = repo.ExistsFeeForPayment(ctx, paymentID)
	require.NoError(t, err)
	assert.True(t, exists)

	// A manual expense that happens to reference the payment does not
	// count as a generated fee.
	otherPaymentID := uuid.New()
	manual, err := ledger.NewExpense(propertyID, now, decimal.NewFromInt(40), ledger.ExpenseCategoryOther, "", "", now)
	require.NoError(t, err)
	manual.PaymentID = &otherPaymentID
	require.NoError(t, repo.Save(ctx, manual))

	exists, err = repo.ExistsFeeForPayment(ctx, otherPaymentID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormExpenseRepository_RoundTripPreservesBackReferences(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 4, 14, 9, 0, 0, 0, time.UTC)
	propertyID := uuid.New()
	billID := uuid.New()

	expense, err := ledger.NewBillExpense(propertyID, billID, now, decimal.NewFromFloat(123.45), ledger.ExpenseCategoryTurnover, "Acme Property Mgmt", "Unit turn", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, expense))

	found, err := repo.FindByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.ExpenseSourcePmBill, found.Source)
	require.NotNil(t, found.BillID)
	assert.Equal(t, billID, *found.BillID)
	assert.Nil(t, found.PaymentID)
	assert.True(t, found.Amount.Equal(decimal.NewFromFloat(123.45)))
	assert.Equal(t, ledger.ExpenseCategoryTurnover, found.Category)
}

func TestGormExpenseRepository_FindByProperty_FiltersBySource(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	propertyID := uuid.New()

	manual, err := ledger.NewExpense(propertyID, now, decimal.NewFromInt(60), ledger.ExpenseCategoryUtilities, "Water Co", "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, manual))

	fee, err := ledger.NewManagementFeeExpense(propertyID, uuid.New(), now, decimal.NewFromInt(85), "Property Manager", "", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fee))

	filter := shared.DefaultFilter()
	filter.Filters["source"] = string(ledger.ExpenseSourceAutoPmFee)
	expenses, err := repo.FindByProperty(ctx, propertyID, filter)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, fee.ID, expenses[0].ID)
}

func TestGormExpenseRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormExpenseRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
