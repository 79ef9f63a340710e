package portfolio

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

	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
)

func testOwner(t *testing.T, name string) *portfolio.Owner {
	t.Helper()
	owner, err := portfolio.NewOwner(name, nil)
	require.NoError(t, err)
	return owner
}

func TestOwnerService_DeleteOwner_BlockedByProperties(t *testing.T) {
	ctx := context.Background()
	clock := shared.FixedClock{Instant: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	owner := testOwner(t, "Hartwell Holdings LLC")

	ownerRepo := new(MockOwnerRepository)
	propertyRepo := new(MockPropertyRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewOwnerService(ownerRepo, propertyRepo, recorder)

	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	propertyRepo.On("CountByOwner", ctx, owner.ID).Return(int64(3), nil)

	err := service.DeleteOwner(ctx, "admin", owner.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "OWNER_HAS_PROPERTIES", domainErr.Code)
	assert.Contains(t, domainErr.Message, "3 properties")
	ownerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOwnerService_DeleteOwner_NoProperties(t *testing.T) {
	ctx := context.Background()
	clock := shared.FixedClock{Instant: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	owner := testOwner(t, "Empty Shelf LLC")

	ownerRepo := new(MockOwnerRepository)
	propertyRepo := new(MockPropertyRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewOwnerService(ownerRepo, propertyRepo, recorder)

	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	propertyRepo.On("CountByOwner", ctx, owner.ID).Return(int64(0), nil)
	ownerRepo.On("Delete", ctx, owner.ID).Return(nil)

	require.NoError(t, service.DeleteOwner(ctx, "admin", owner.ID))
	ownerRepo.AssertExpectations(t)
}

func TestOwnerService_CreateOwner_DefaultFeePercent(t *testing.T) {
	ctx := context.Background()
	clock := shared.FixedClock{Instant: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	ownerRepo := new(MockOwnerRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewOwnerService(ownerRepo, new(MockPropertyRepository), recorder)

	ownerRepo.On("Save", ctx, mock.AnythingOfType("*portfolio.Owner")).Return(nil)

	resp, err := service.CreateOwner(ctx, "admin", CreateOwnerRequest{Name: "Hartwell Holdings LLC"})
	require.NoError(t, err)
	assert.True(t, resp.ManagementFeePercent.Equal(decimal.NewFromInt(10)))
}

func TestOwnerService_BankAccounts_DefaultIsExclusive(t *testing.T) {
	ctx := context.Background()
	clock := shared.FixedClock{Instant: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	owner := testOwner(t, "Hartwell Holdings LLC")

	ownerRepo := new(MockOwnerRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewOwnerService(ownerRepo, new(MockPropertyRepository), recorder)

	ownerRepo.On("FindByID", ctx, owner.ID).Return(owner, nil)
	ownerRepo.On("Save", ctx, owner).Return(nil)

	// First account becomes the default even when not asked to
	resp, err := service.AddBankAccount(ctx, "admin", owner.ID, AddBankAccountRequest{
		BankName:     "First Keystone",
		AccountLast4: "4417",
	})
	require.NoError(t, err)
	require.Len(t, resp.BankAccounts, 1)
	assert.True(t, resp.BankAccounts[0].IsDefault)

	// A second default displaces the first
	resp, err = service.AddBankAccount(ctx, "admin", owner.ID, AddBankAccountRequest{
		BankName:     "Commerce Trust",
		AccountLast4: "9920",
		IsDefault:    true,
	})
	require.NoError(t, err)
	require.Len(t, resp.BankAccounts, 2)
	assert.False(t, resp.BankAccounts[0].IsDefault)
	assert.True(t, resp.BankAccounts[1].IsDefault)
}

func TestPropertyService_DeleteProperty_BlockedByActiveLease(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}

	property := testProperty(t, uuid.New(), portfolio.PropertyStatusOccupied, now)

	propertyRepo := new(MockPropertyRepository)
	leaseRepo := new(MockLeaseRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewPropertyService(propertyRepo, new(MockOwnerRepository), leaseRepo, recorder, clock)

	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	leaseRepo.On("CountActiveByProperty", ctx, property.ID).Return(int64(1), nil)

	err := service.DeleteProperty(ctx, "admin", property.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PROPERTY_HAS_ACTIVE_LEASE", domainErr.Code)
	propertyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTenantService_DeleteTenant_BlockedByActiveLease(t *testing.T) {
	ctx := context.Background()
	clock := shared.FixedClock{Instant: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}

	tenant, err := portfolio.NewTenant("Dana", "Whitfield")
	require.NoError(t, err)

	tenantRepo := new(MockTenantRepository)
	leaseRepo := new(MockLeaseRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewTenantService(tenantRepo, leaseRepo, recorder)

	tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	leaseRepo.On("CountActiveByTenant", ctx, tenant.ID).Return(int64(1), nil)

	err = service.DeleteTenant(ctx, "admin", tenant.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TENANT_HAS_ACTIVE_LEASE", domainErr.Code)
	tenantRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
