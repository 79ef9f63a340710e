package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/billing"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PmBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PmBill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PmBill, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.PmBill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.PmBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]billing.PmBill, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]billing.PmBill), args.Error(1)
}

func (m *MockBillRepository) FindByStatus(ctx context.Context, status billing.BillStatus, filter shared.Filter) ([]billing.PmBill, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]billing.PmBill), args.Error(1)
}

type MockExpenseRepositoryForBilling struct {
	mock.Mock
}

func (m *MockExpenseRepositoryForBilling) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepositoryForBilling) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepositoryForBilling) Save(ctx context.Context, expense *ledger.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepositoryForBilling) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepositoryForBilling) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepositoryForBilling) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ledger.Expense, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepositoryForBilling) CountByBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepositoryForBilling) ExistsFeeForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(bool), args.Error(1)
}

type MockPropertyRepositoryForBilling struct {
	mock.Mock
}

func (m *MockPropertyRepositoryForBilling) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepositoryForBilling) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepositoryForBilling) Save(ctx context.Context, property *portfolio.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepositoryForBilling) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepositoryForBilling) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepositoryForBilling) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepositoryForBilling) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepositoryForBilling) FindByStatus(ctx context.Context, status portfolio.PropertyStatus, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

// =============================================================================
// Test Helpers
// =============================================================================

type stubTxManager struct{}

func (stubTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memActivityLogRepo struct {
	entries []audit.ActivityLog
}

func (r *memActivityLogRepo) Append(ctx context.Context, entry *audit.ActivityLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memActivityLogRepo) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter shared.Filter) ([]audit.ActivityLog, error) {
	return r.entries, nil
}

func (r *memActivityLogRepo) FindAll(ctx context.Context, filter shared.Filter) ([]audit.ActivityLog, error) {
	return r.entries, nil
}

func (r *memActivityLogRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(r.entries)), nil
}

func newTestRecorder(clock shared.Clock) (*appaudit.Recorder, *memActivityLogRepo) {
	repo := &memActivityLogRepo{}
	return appaudit.NewRecorder(repo, clock, zap.NewNop()), repo
}
