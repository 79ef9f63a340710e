package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/audit"
	"github.com/propertyops/backend/internal/domain/shared"
)

func TestGormActivityLogRepository_AppendAndFindByEntity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormActivityLogRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	paymentID := uuid.New()

	details := audit.FeeGeneratedDetails{
		PaymentID:  uuid.New(),
		FeePercent: "10",
		FeeAmount:  "85",
	}
	entry, err := audit.NewActivityLog("payment", paymentID, audit.ActionFeeGenerated, details, "user-1", now)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, entry))

	entries, err := repo.FindByEntity(ctx, "payment", paymentID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionFeeGenerated, entries[0].Action)
	assert.Equal(t, "user-1", entries[0].ActorID)
	assert.Equal(t, details, entries[0].Details)
}

func TestGormActivityLogRepository_NilDetailsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormActivityLogRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ownerID := uuid.New()

	entry, err := audit.NewActivityLog("owner", ownerID, audit.ActionDeleted, nil, "user-2", now)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, entry))

	entries, err := repo.FindByEntity(ctx, "owner", ownerID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Details)
}

func TestGormActivityLogRepository_FindAll_FilterByAction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormActivityLogRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	created, err := audit.NewActivityLog("property", uuid.New(), audit.ActionCreated, audit.CreatedDetails{Summary: "12 Oak St"}, "user-1", now)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, created))

	paid, err := audit.NewActivityLog("bill", uuid.New(), audit.ActionBillPaid, audit.BillPaidDetails{PaidDate: "2025-06-02", ExpensesCreated: 2}, "user-1", now.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, paid))

	filter := shared.DefaultFilter()
	filter.Filters["action"] = string(audit.ActionBillPaid)
	entries, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.BillPaidDetails{PaidDate: "2025-06-02", ExpensesCreated: 2}, entries[0].Details)

	count, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
