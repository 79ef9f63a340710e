package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

func testPropertyForLedger(t *testing.T, ownerID uuid.UUID, now time.Time) *portfolio.Property {
	t.Helper()
	addr, err := valueobject.NewAddress("528 Winton St", "Philadelphia", "PA", "19148")
	require.NoError(t, err)
	property, err := portfolio.NewProperty(ownerID, addr, portfolio.PropertyStatusOccupied, now)
	require.NoError(t, err)
	return property
}

func testOwnerForLedger(t *testing.T, feePercent *decimal.Decimal) *portfolio.Owner {
	t.Helper()
	owner, err := portfolio.NewOwner("Harbor View LLC", feePercent)
	require.NoError(t, err)
	return owner
}

func TestPaymentService_RecordPayment_HapGeneratesManagementFee(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, logRepo := newTestRecorder(clock)

	owner := testOwnerForLedger(t, nil) // defaults to 10%
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	expenseRepo.On("ExistsFeeForPayment", ctx, mock.AnythingOfType("uuid.UUID")).Return(false, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(nil)

	var savedFee *ledger.Expense
	expenseRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Expense")).Run(func(args mock.Arguments) {
		savedFee = args.Get(1).(*ledger.Expense)
	}).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	resp, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(850),
		Type:        "hap",
		Status:      "received",
	})

	require.NoError(t, err)
	assert.Equal(t, "hap", resp.Type)
	require.NotNil(t, savedFee)
	assert.Equal(t, "85", savedFee.Amount.String())
	assert.Equal(t, ledger.ExpenseSourceAutoPmFee, savedFee.Source)
	assert.Equal(t, ledger.ExpenseCategoryProfessionalServices, savedFee.Category)
	assert.Equal(t, ledger.SubcategoryPmManagementFee, savedFee.Subcategory)
	assert.Equal(t, "Property Manager", savedFee.Vendor)
	require.NotNil(t, savedFee.PaymentID)
	assert.Equal(t, resp.ID, *savedFee.PaymentID)

	require.Len(t, logRepo.entries, 2)
	feeDetails, ok := logRepo.entries[1].Details.(audit.FeeGeneratedDetails)
	require.True(t, ok)
	assert.Equal(t, resp.ID, feeDetails.PaymentID)
	assert.Equal(t, "85.00", feeDetails.FeeAmount)
	paymentRepo.AssertExpectations(t)
	expenseRepo.AssertExpectations(t)
}

func TestPaymentService_RecordPayment_CustomFeePercentRounding(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, _ := newTestRecorder(clock)

	eight := decimal.NewFromInt(8)
	owner := testOwnerForLedger(t, &eight)
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	expenseRepo.On("ExistsFeeForPayment", ctx, mock.AnythingOfType("uuid.UUID")).Return(false, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(nil)

	var savedFee *ledger.Expense
	expenseRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Expense")).Run(func(args mock.Arguments) {
		savedFee = args.Get(1).(*ledger.Expense)
	}).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	// 831.25 * 8 = 6650 cents exactly; banker-free round keeps it at 66.50
	_, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: now,
		Amount:      decimal.RequireFromString("831.25"),
		Type:        "copay",
		Status:      "received",
	})

	require.NoError(t, err)
	require.NotNil(t, savedFee)
	assert.Equal(t, "66.50", savedFee.Amount.StringFixed(2))
}

func TestPaymentService_RecordPayment_NsfSkipsFee(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, logRepo := newTestRecorder(clock)

	owner := testOwnerForLedger(t, nil)
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	_, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: now,
		Amount:      decimal.NewFromInt(850),
		Type:        "hap",
		Status:      "nsf",
	})

	require.NoError(t, err)
	ownerRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, audit.ActionPaymentRecorded, logRepo.entries[0].Action)
}

func TestPaymentService_RecordPayment_OtherIncomeSkipsFee(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, _ := newTestRecorder(clock)

	owner := testOwnerForLedger(t, nil)
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	_, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: now,
		Amount:      decimal.NewFromInt(120),
		Type:        "other_income",
		Status:      "received",
	})

	require.NoError(t, err)
	expenseRepo.AssertNotCalled(t, "ExistsFeeForPayment", mock.Anything, mock.Anything)
	expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPayment_ExistingFeeNotDuplicated(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, logRepo := newTestRecorder(clock)

	owner := testOwnerForLedger(t, nil)
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	expenseRepo.On("ExistsFeeForPayment", ctx, mock.AnythingOfType("uuid.UUID")).Return(true, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	_, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: now,
		Amount:      decimal.NewFromInt(850),
		Type:        "hap",
		Status:      "received",
	})

	require.NoError(t, err)
	expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	require.Len(t, logRepo.entries, 1)
}

func TestPaymentService_RecordPayment_ZeroFeeSkipped(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, _ := newTestRecorder(clock)

	owner := testOwnerForLedger(t, nil)
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	// 0.04 at 10% is 0.4 cents, which rounds to a zero fee
	_, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: now,
		Amount:      decimal.RequireFromString("0.04"),
		Type:        "copay",
		Status:      "received",
	})

	require.NoError(t, err)
	expenseRepo.AssertNotCalled(t, "ExistsFeeForPayment", mock.Anything, mock.Anything)
	expenseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPayment_TxFailureSurfaces(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, logRepo := newTestRecorder(clock)

	owner := testOwnerForLedger(t, nil)
	property := testPropertyForLedger(t, owner.ID, now)

	ctx := context.Background()
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	paymentRepo.On("Save", ctx, mock.AnythingOfType("*ledger.Payment")).Return(errors.New("insert failed"))

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	_, err := service.RecordPayment(ctx, "user-1", RecordPaymentRequest{
		PropertyID:  property.ID,
		PaymentDate: now,
		Amount:      decimal.NewFromInt(120),
		Type:        "other_income",
	})

	require.Error(t, err)
	assert.Empty(t, logRepo.entries)
}

func TestPaymentService_DeletePayment_LeavesGeneratedFee(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	ownerRepo := new(MockOwnerRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, logRepo := newTestRecorder(clock)

	payment, err := ledger.NewPayment(uuid.New(), nil, now, decimal.NewFromInt(850), ledger.PaymentTypeHap, ledger.PaymentStatusReceived, now)
	require.NoError(t, err)

	ctx := context.Background()
	paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
	paymentRepo.On("Delete", ctx, payment.ID).Return(nil)

	service := NewPaymentService(paymentRepo, expenseRepo, propertyRepo, ownerRepo, stubTxManager{}, recorder, clock)

	require.NoError(t, service.DeletePayment(ctx, "user-1", payment.ID))
	expenseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, audit.ActionDeleted, logRepo.entries[0].Action)
	paymentRepo.AssertExpectations(t)
}

func TestExpenseService_DeleteExpense_BillSourcedBlocked(t *testing.T) {
	expenseRepo := new(MockExpenseRepository)
	propertyRepo := new(MockPropertyRepositoryForLedger)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}
	recorder, _ := newTestRecorder(clock)

	billID := uuid.New()
	expense, err := ledger.NewBillExpense(uuid.New(), billID, now, decimal.NewFromInt(200), ledger.ExpenseCategoryMaintenanceRepairs, "Acme PM", "Furnace repair", now)
	require.NoError(t, err)

	ctx := context.Background()
	expenseRepo.On("FindByID", ctx, expense.ID).Return(expense, nil)

	service := NewExpenseService(expenseRepo, propertyRepo, recorder, clock)

	err = service.DeleteExpense(ctx, "user-1", expense.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "EXPENSE_FROM_BILL", domainErr.Code)
	expenseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
