package portfolio

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	addr, err := valueobject.NewAddress("123 Elm St", "Cleveland", "OH", "44101")
	require.NoError(t, err)
	return addr
}

func TestNewProperty(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("created vacant stamps vacant since", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusVacant, now)

		require.NoError(t, err)
		require.NotNil(t, p.VacantSince)
		assert.Equal(t, now, *p.VacantSince)
	})

	t.Run("created occupied has no vacant since", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, now)

		require.NoError(t, err)
		assert.Nil(t, p.VacantSince)
	})

	t.Run("defaults to vacant when status omitted", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), "", now)

		require.NoError(t, err)
		assert.Equal(t, PropertyStatusVacant, p.Status)
		assert.NotNil(t, p.VacantSince)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := NewProperty(uuid.Nil, testAddress(t), PropertyStatusVacant, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner is required")
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := NewProperty(uuid.New(), testAddress(t), "condemned", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid property status")
	})
}

func TestProperty_ChangeStatus(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 10)
	day3 := day1.AddDate(0, 0, 20)

	t.Run("entering vacant stamps timestamp once", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, day1)
		require.NoError(t, err)

		require.NoError(t, p.ChangeStatus(PropertyStatusVacant, day2))
		require.NotNil(t, p.VacantSince)
		assert.Equal(t, day2, *p.VacantSince)
	})

	t.Run("vacant to vacant keeps original timestamp", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, day1)
		require.NoError(t, err)
		require.NoError(t, p.ChangeStatus(PropertyStatusVacant, day2))

		require.NoError(t, p.ChangeStatus(PropertyStatusVacant, day3))

		require.NotNil(t, p.VacantSince)
		assert.Equal(t, day2, *p.VacantSince)
	})

	t.Run("leaving vacant clears timestamp", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusVacant, day1)
		require.NoError(t, err)

		require.NoError(t, p.ChangeStatus(PropertyStatusRehab, day2))
		assert.Nil(t, p.VacantSince)

		// Next vacancy starts a fresh spell
		require.NoError(t, p.ChangeStatus(PropertyStatusVacant, day3))
		require.NotNil(t, p.VacantSince)
		assert.Equal(t, day3, *p.VacantSince)
	})

	t.Run("non vacant moves never set timestamp", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, day1)
		require.NoError(t, err)

		require.NoError(t, p.ChangeStatus(PropertyStatusPendingInspection, day2))
		require.NoError(t, p.ChangeStatus(PropertyStatusPendingPacket, day3))
		assert.Nil(t, p.VacantSince)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, day1)
		require.NoError(t, err)

		err = p.ChangeStatus("demolished", day2)
		require.Error(t, err)
	})
}

func TestProperty_UpdateDetails(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	edited := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("stamps updated at with the supplied time", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, created)
		require.NoError(t, err)

		addr, err := valueobject.NewAddress("456 Oak Ave", "Cleveland", "OH", "44102")
		require.NoError(t, err)
		require.NoError(t, p.UpdateDetails(addr, 3, 1, 1948, "new roof 2021", edited))

		assert.Equal(t, edited, p.UpdatedAt)
		assert.Equal(t, 3, p.Bedrooms)
		assert.Equal(t, "456 Oak Ave", p.Address.Street())
	})

	t.Run("rejects negative rooms", func(t *testing.T) {
		p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, created)
		require.NoError(t, err)

		err = p.UpdateDetails(testAddress(t), -1, 1, 1948, "", edited)
		require.Error(t, err)
		assert.Equal(t, created, p.UpdatedAt)
	})
}

func TestProperty_DaysVacant(t *testing.T) {
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	p, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusVacant, start)
	require.NoError(t, err)

	t.Run("partial days floor", func(t *testing.T) {
		// 10 days and 23 hours later is still 10 days
		now := start.Add(10*24*time.Hour + 23*time.Hour)
		assert.Equal(t, 10, p.DaysVacant(now))
	})

	t.Run("no timestamp reads as zero", func(t *testing.T) {
		occupied, err := NewProperty(uuid.New(), testAddress(t), PropertyStatusOccupied, start)
		require.NoError(t, err)
		assert.Equal(t, 0, occupied.DaysVacant(start.AddDate(0, 0, 30)))
	})
}
