package portfolio

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLease(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rent := decimal.NewFromInt(1250)

	t.Run("successful creation", func(t *testing.T) {
		lease, err := NewLease(uuid.New(), uuid.New(), start, rent, now)

		require.NoError(t, err)
		assert.Equal(t, LeaseStatusActive, lease.Status)
		assert.True(t, lease.IsActive())
		assert.Nil(t, lease.TerminatedAt)
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := NewLease(uuid.Nil, uuid.New(), start, rent, now)
		require.Error(t, err)
	})

	t.Run("negative rent", func(t *testing.T) {
		_, err := NewLease(uuid.New(), uuid.New(), start, decimal.NewFromInt(-1), now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})
}

func TestLease_Terminate(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	later := now.AddDate(0, 6, 0)

	lease, err := NewLease(uuid.New(), uuid.New(), now, decimal.NewFromInt(900), now)
	require.NoError(t, err)

	require.NoError(t, lease.Terminate(later))
	assert.Equal(t, LeaseStatusTerminated, lease.Status)
	require.NotNil(t, lease.TerminatedAt)
	assert.Equal(t, later, *lease.TerminatedAt)

	t.Run("double termination rejected", func(t *testing.T) {
		err := lease.Terminate(later.AddDate(0, 0, 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already terminated")
	})
}

func TestLease_SetSubsidy(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	lease, err := NewLease(uuid.New(), uuid.New(), now, decimal.NewFromInt(1100), now)
	require.NoError(t, err)

	require.NoError(t, lease.SetSubsidy(
		decimal.NewFromInt(850), decimal.NewFromInt(250), decimal.NewFromInt(75)))
	assert.True(t, lease.IsSubsidized())

	t.Run("negative amounts rejected", func(t *testing.T) {
		err := lease.SetSubsidy(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})
}
