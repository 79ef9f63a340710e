package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	appaudit "github.com/propertyops/backend/internal/application/audit"
	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Owner, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Save(ctx context.Context, owner *portfolio.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) Save(ctx context.Context, property *portfolio.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

func (m *MockPropertyRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) FindByStatus(ctx context.Context, status portfolio.PropertyStatus, filter shared.Filter) ([]portfolio.Property, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]portfolio.Property), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *portfolio.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolio.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]portfolio.Lease, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]portfolio.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Save(ctx context.Context, lease *portfolio.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]portfolio.Lease, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]portfolio.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]portfolio.Lease, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]portfolio.Lease), args.Error(1)
}

func (m *MockLeaseRepository) CountActiveByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeaseRepository) CountActiveByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// Test Helpers
// =============================================================================

// stubTxManager runs the function inline, no real transaction
type stubTxManager struct{}

func (stubTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memActivityLogRepo captures appended entries for assertions
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
