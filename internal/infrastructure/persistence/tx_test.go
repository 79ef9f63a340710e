package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/shared"
)

func TestGormTxManager_WithinTx_CommitsOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	txManager := NewGormTxManager(db)
	paymentRepo := NewGormPaymentRepository(db)
	expenseRepo := NewGormExpenseRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	propertyID := uuid.New()

	payment, err := ledger.NewPayment(propertyID, nil, now, decimal.NewFromInt(850), ledger.PaymentTypeHap, ledger.PaymentStatusReceived, now)
	require.NoError(t, err)
	expense, err := ledger.NewExpense(propertyID, now, decimal.NewFromInt(85), ledger.ExpenseCategoryProfessionalServices, "Property Manager", "", now)
	require.NoError(t, err)

	err = txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		return expenseRepo.Save(txCtx, expense)
	})
	require.NoError(t, err)

	saved, err := paymentRepo.FindByID(ctx, payment.ID)
	require.NoError(t, err)
	assert.True(t, saved.Amount.Equal(decimal.NewFromInt(850)))

	count, err := expenseRepo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormTxManager_WithinTx_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	txManager := NewGormTxManager(db)
	paymentRepo := NewGormPaymentRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	payment, err := ledger.NewPayment(uuid.New(), nil, now, decimal.NewFromInt(700), ledger.PaymentTypeCopay, ledger.PaymentStatusReceived, now)
	require.NoError(t, err)

	boom := errors.New("fee generation failed")
	err = txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := paymentRepo.Save(txCtx, payment); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = paymentRepo.FindByID(ctx, payment.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTxManager_WithinTx_ReadsSeeUncommittedWrites(t *testing.T) {
	db := setupTestDB(t)
	txManager := NewGormTxManager(db)
	expenseRepo := NewGormExpenseRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	billID := uuid.New()

	expense, err := ledger.NewExpense(uuid.New(), now, decimal.NewFromInt(200), ledger.ExpenseCategoryMaintenanceRepairs, "Acme", "Furnace repair", now)
	require.NoError(t, err)
	expense.BillID = &billID

	err = txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if err := expenseRepo.Save(txCtx, expense); err != nil {
			return err
		}
		count, err := expenseRepo.CountByBill(txCtx, billID)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(1), count)
		return nil
	})
	require.NoError(t, err)
}
