package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/ledger"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ledger.Payment, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]ledger.Payment), args.Error(1)
}

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *ledger.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ledger.Expense, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).([]ledger.Expense), args.Error(1)
}

func (m *MockExpenseRepository) CountByBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) ExistsFeeForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(bool), args.Error(1)
}

type MockPropertyRepositoryForLedger struct {
	mock.Mock
}

func (m *MockPropertyRepositoryForLedger) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepositoryForLedger) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepositoryForLedger) Save(ctx context.Context, property *portfolio.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepositoryForLedger) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepositoryForLedger) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepositoryForLedger) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepositoryForLedger) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepositoryForLedger) FindByStatus(ctx context.Context, status portfolio.PropertyStatus, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

type MockOwnerRepositoryForLedger struct {
	mock.Mock
}

func (m *MockOwnerRepositoryForLedger) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Owner), args.Error(1)
}

func (m *MockOwnerRepositoryForLedger) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Owner, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Owner), args.Error(1)
}

func (m *MockOwnerRepositoryForLedger) Save(ctx context.Context, owner *portfolio.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepositoryForLedger) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnerRepositoryForLedger) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
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
