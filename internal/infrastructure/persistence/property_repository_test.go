package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propertyops/backend/internal/domain/portfolio"
	"github.com/propertyops/backend/internal/domain/shared"
	"github.com/propertyops/backend/internal/domain/shared/valueobject"
)

func TestGormPropertyRepository_SaveAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	address := valueobject.MustNewAddress("123 Maple St", "Cleveland", "OH", "44101", valueobject.WithUnit("2B"))
	property, err := portfolio.NewProperty(uuid.New(), address, portfolio.PropertyStatusVacant, now)
	require.NoError(t, err)
	property.Bedrooms = 3
	property.Bathrooms = 1
	property.YearBuilt = 1948

	require.NoError(t, repo.Save(ctx, property))

	found, err := repo.FindByID(ctx, property.ID)
	require.NoError(t, err)
	assert.True(t, found.Address.Equals(address))
	assert.Equal(t, "2B", found.Address.Unit())
	assert.Equal(t, portfolio.PropertyStatusVacant, found.Status)
	require.NotNil(t, found.VacantSince)
	assert.True(t, found.VacantSince.Equal(now))
	assert.Equal(t, 3, found.Bedrooms)
	assert.Equal(t, 1948, found.YearBuilt)
}

func TestGormPropertyRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPropertyRepository_FindByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	ownerID := uuid.New()

	vacant, err := portfolio.NewProperty(ownerID, valueobject.MustNewAddress("10 Ash Ave", "Cleveland", "OH", "44102"), portfolio.PropertyStatusVacant, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, vacant))

	occupied, err := portfolio.NewProperty(ownerID, valueobject.MustNewAddress("11 Ash Ave", "Cleveland", "OH", "44102"), portfolio.PropertyStatusOccupied, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, occupied))

	properties, err := repo.FindByStatus(ctx, portfolio.PropertyStatusVacant, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, vacant.ID, properties[0].ID)
}

func TestGormPropertyRepository_FindByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	ownerID := uuid.New()

	mine, err := portfolio.NewProperty(ownerID, valueobject.MustNewAddress("20 Birch Rd", "Akron", "OH", "44301"), portfolio.PropertyStatusOccupied, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mine))

	theirs, err := portfolio.NewProperty(uuid.New(), valueobject.MustNewAddress("21 Birch Rd", "Akron", "OH", "44301"), portfolio.PropertyStatusOccupied, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, theirs))

	properties, err := repo.FindByOwner(ctx, ownerID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, mine.ID, properties[0].ID)

	count, err := repo.CountByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormPropertyRepository_FindAll_RejectsUnknownSortField(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPropertyRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	for _, street := range []string{"5 Cedar Ct", "3 Cedar Ct"} {
		p, err := portfolio.NewProperty(uuid.New(), valueobject.MustNewAddress(street, "Cleveland", "OH", "44103"), portfolio.PropertyStatusVacant, now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
	}

	filter := shared.DefaultFilter()
	filter.OrderBy = "address_text; DROP TABLE properties"
	filter.OrderDir = "asc"
	properties, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	// Hostile sort input falls back to the default address ordering.
	require.Len(t, properties, 2)
	assert.Equal(t, "3 Cedar Ct, Cleveland, OH 44103", properties[0].Address.FullAddress())
}
