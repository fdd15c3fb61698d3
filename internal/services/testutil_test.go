// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hanmaru/mall-backend/internal/models"
)

// setupTestDB opens a fresh in-memory database and migrates the full schema.
// Each caller gets its own database, so tests never see each other's rows.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	))

	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int, active bool) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Description:   name + " description",
		Category:      "clothing",
		Price:         price,
		StockQuantity: stock,
		IsActive:      active,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func testShippingAddress() ShippingAddressRequest {
	return ShippingAddressRequest{
		Name:    "Kim Minji",
		Phone:   "010-1234-5678",
		ZipCode: "06236",
		Address: "123 Teheran-ro, Gangnam-gu, Seoul",
	}
}
