package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/infrastructure/persistence/models"
)

// setupTestDB opens an in-memory SQLite database and migrates every
// persistence model into it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.OwnerModel{},
		&models.PropertyModel{},
		&models.TenantModel{},
		&models.LeaseModel{},
		&models.PaymentModel{},
		&models.ExpenseModel{},
		&models.PmBillModel{},
		&models.PmTaskModel{},
		&models.RehabProjectModel{},
		&models.CityNoticeModel{},
		&models.PropertyTaxModel{},
		&models.InsurancePolicyModel{},
		&models.ActivityLogModel{},
	)
	require.NoError(t, err)

	return db
}
