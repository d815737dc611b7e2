package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/config"
	"github.com/ridewise/ridewise-backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique in-memory database per test for isolation.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Vehicle{},
		&models.Ride{},
		&models.Review{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		BaseFare:         5.0,
		PricePerKm:       1.5,
	}
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Email:    uuid.New().String() + "@example.com",
		Password: "not-a-real-hash",
		Name:     "Test " + role,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createVehicle(t *testing.T, db *gorm.DB, ownerID uuid.UUID, available bool) *models.Vehicle {
	t.Helper()
	vehicle := models.Vehicle{
		ID:           uuid.New(),
		UserID:       ownerID,
		Make:         "Toyota",
		Model:        "Prius",
		Year:         2020,
		LicensePlate: "TST-" + uuid.New().String()[:4],
		Capacity:     4,
		Description:  "A dependable test vehicle with room for four.",
		VehicleType:  "Hybrid Car",
		Available:    available,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return &vehicle
}

func createRide(t *testing.T, db *gorm.DB, passengerID, vehicleID uuid.UUID, status models.RideStatus) *models.Ride {
	t.Helper()
	ride := models.Ride{
		ID:              uuid.New(),
		UserID:          passengerID,
		VehicleID:       vehicleID,
		Status:          status,
		PickupLocation:  "Central Station",
		DropoffLocation: "Airport",
		PickupTime:      time.Now().Add(time.Hour),
		Price:           12.50,
	}
	require.NoError(t, db.Create(&ride).Error)
	return &ride
}
