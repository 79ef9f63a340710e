package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

func testProperty(t *testing.T, ownerID uuid.UUID, status portfolio.PropertyStatus, now time.Time) *portfolio.Property {
	t.Helper()
	addr, err := valueobject.NewAddress("528 Winton St", "Philadelphia", "PA", "19148")
	require.NoError(t, err)
	property, err := portfolio.NewProperty(ownerID, addr, status, now)
	require.NoError(t, err)
	return property
}

func testLease(t *testing.T, tenantID, propertyID uuid.UUID, now time.Time) *portfolio.Lease {
	t.Helper()
	lease, err := portfolio.NewLease(tenantID, propertyID, now, decimal.NewFromInt(1200), now)
	require.NoError(t, err)
	return lease
}

func TestLeaseService_CreateLease_TerminatesExistingAndOccupies(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}

	tenantID := uuid.New()
	ownerID := uuid.New()
	property := testProperty(t, ownerID, portfolio.PropertyStatusVacant, now.AddDate(0, -2, 0))
	oldLease := testLease(t, uuid.New(), property.ID, now.AddDate(-1, 0, 0))

	leaseRepo := new(MockLeaseRepository)
	propertyRepo := new(MockPropertyRepository)
	tenantRepo := new(MockTenantRepository)
	recorder, logRepo := newTestRecorder(clock)
	service := NewLeaseService(leaseRepo, propertyRepo, tenantRepo, stubTxManager{}, recorder, clock)

	tenant, err := portfolio.NewTenant("Dana", "Whitfield")
	require.NoError(t, err)
	tenant.ID = tenantID

	tenantRepo.On("FindByID", ctx, tenantID).Return(tenant, nil)
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	leaseRepo.On("FindActiveByProperty", ctx, property.ID).Return([]portfolio.Lease{*oldLease}, nil)
	leaseRepo.On("Save", ctx, mock.AnythingOfType("*portfolio.Lease")).Return(nil)
	propertyRepo.On("Save", ctx, mock.AnythingOfType("*portfolio.Property")).Return(nil)

	resp, err := service.CreateLease(ctx, "admin", CreateLeaseRequest{
		TenantID:     tenantID,
		PropertyID:   property.ID,
		StartDate:    now,
		ContractRent: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, portfolio.LeaseStatusActive.String(), resp.Status)

	// The displaced lease was terminated, both leases saved
	leaseRepo.AssertNumberOfCalls(t, "Save", 2)

	// The property is occupied and the vacancy timestamp cleared
	assert.Equal(t, portfolio.PropertyStatusOccupied, property.Status)
	assert.Nil(t, property.VacantSince)

	// Activation is logged with the displaced lease ids
	require.NotEmpty(t, logRepo.entries)
	var activated *audit.ActivityLog
	for i := range logRepo.entries {
		if logRepo.entries[i].Action == audit.ActionLeaseActivated {
			activated = &logRepo.entries[i]
		}
	}
	require.NotNil(t, activated)
	details := activated.Details.(audit.LeaseActivatedDetails)
	assert.Equal(t, []uuid.UUID{oldLease.ID}, details.TerminatedLeaseIDs)

	leaseRepo.AssertExpectations(t)
	propertyRepo.AssertExpectations(t)
	tenantRepo.AssertExpectations(t)
}

func TestLeaseService_CreateLease_NoExistingLease(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}

	tenantID := uuid.New()
	property := testProperty(t, uuid.New(), portfolio.PropertyStatusVacant, now.AddDate(0, -1, 0))

	leaseRepo := new(MockLeaseRepository)
	propertyRepo := new(MockPropertyRepository)
	tenantRepo := new(MockTenantRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewLeaseService(leaseRepo, propertyRepo, tenantRepo, stubTxManager{}, recorder, clock)

	tenant, err := portfolio.NewTenant("Miguel", "Reyes")
	require.NoError(t, err)
	tenant.ID = tenantID

	tenantRepo.On("FindByID", ctx, tenantID).Return(tenant, nil)
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	leaseRepo.On("FindActiveByProperty", ctx, property.ID).Return([]portfolio.Lease{}, nil)
	leaseRepo.On("Save", ctx, mock.AnythingOfType("*portfolio.Lease")).Return(nil)
	propertyRepo.On("Save", ctx, mock.AnythingOfType("*portfolio.Property")).Return(nil)

	_, err = service.CreateLease(ctx, "admin", CreateLeaseRequest{
		TenantID:     tenantID,
		PropertyID:   property.ID,
		StartDate:    now,
		ContractRent: decimal.NewFromInt(950),
	})
	require.NoError(t, err)

	leaseRepo.AssertNumberOfCalls(t, "Save", 1)
	assert.Equal(t, portfolio.PropertyStatusOccupied, property.Status)
}

func TestLeaseService_TerminateLease_MarksPropertyVacant(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}

	property := testProperty(t, uuid.New(), portfolio.PropertyStatusOccupied, now.AddDate(-1, 0, 0))
	lease := testLease(t, uuid.New(), property.ID, now.AddDate(-1, 0, 0))

	leaseRepo := new(MockLeaseRepository)
	propertyRepo := new(MockPropertyRepository)
	tenantRepo := new(MockTenantRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewLeaseService(leaseRepo, propertyRepo, tenantRepo, stubTxManager{}, recorder, clock)

	leaseRepo.On("FindByID", ctx, lease.ID).Return(lease, nil)
	leaseRepo.On("Save", ctx, lease).Return(nil)
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)
	propertyRepo.On("Save", ctx, property).Return(nil)

	resp, err := service.TerminateLease(ctx, "admin", lease.ID)
	require.NoError(t, err)
	assert.Equal(t, portfolio.LeaseStatusTerminated.String(), resp.Status)
	require.NotNil(t, resp.TerminatedAt)
	assert.True(t, resp.TerminatedAt.Equal(now))

	assert.Equal(t, portfolio.PropertyStatusVacant, property.Status)
	require.NotNil(t, property.VacantSince)
	assert.True(t, property.VacantSince.Equal(now))
}

func TestLeaseService_TerminateLease_AlreadyTerminated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)
	clock := shared.FixedClock{Instant: now}

	property := testProperty(t, uuid.New(), portfolio.PropertyStatusVacant, now.AddDate(-1, 0, 0))
	lease := testLease(t, uuid.New(), property.ID, now.AddDate(-1, 0, 0))
	require.NoError(t, lease.Terminate(now.AddDate(0, -1, 0)))

	leaseRepo := new(MockLeaseRepository)
	propertyRepo := new(MockPropertyRepository)
	recorder, _ := newTestRecorder(clock)
	service := NewLeaseService(leaseRepo, propertyRepo, new(MockTenantRepository), stubTxManager{}, recorder, clock)

	leaseRepo.On("FindByID", ctx, lease.ID).Return(lease, nil)
	propertyRepo.On("FindByID", ctx, property.ID).Return(property, nil)

	_, err := service.TerminateLease(ctx, "admin", lease.ID)
	require.Error(t, err)
	leaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
