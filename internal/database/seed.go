package database

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts demo accounts and vehicles for local development.
// Idempotent: skipped when any user already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("seed skipped, users already present", "count", count)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	driver1 := models.User{ID: uuid.New(), Email: "driver1@example.com", Password: string(hash), Name: "John Driver", Role: models.RoleDriver}
	driver2 := models.User{ID: uuid.New(), Email: "driver2@example.com", Password: string(hash), Name: "Jane Driver", Role: models.RoleDriver}
	passenger1 := models.User{ID: uuid.New(), Email: "passenger1@example.com", Password: string(hash), Name: "Bob Passenger", Role: models.RolePassenger}
	passenger2 := models.User{ID: uuid.New(), Email: "passenger2@example.com", Password: string(hash), Name: "Alice Passenger", Role: models.RolePassenger}

	vehicles := []models.Vehicle{
		{
			ID: uuid.New(), UserID: driver1.ID,
			Make: "Tesla", Model: "Model 3", Year: 2022, LicensePlate: "EV-2022",
			Capacity: 4, VehicleType: "Electric Car", Available: true,
			Description: "Quiet electric sedan with autopilot and plenty of trunk space.",
		},
		{
			ID: uuid.New(), UserID: driver1.ID,
			Make: "Toyota", Model: "Prius", Year: 2020, LicensePlate: "HY-2020",
			Capacity: 4, VehicleType: "Hybrid Car", Available: true,
			Description: "Reliable hybrid, great fuel economy for longer trips.",
		},
		{
			ID: uuid.New(), UserID: driver2.ID,
			Make: "Ford", Model: "Transit", Year: 2021, LicensePlate: "VN-2021",
			Capacity: 8, VehicleType: "Van", Available: true,
			Description: "Spacious van suitable for group rides and airport runs.",
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range []models.User{driver1, driver2, passenger1, passenger2} {
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		for _, v := range vehicles {
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		}
		slog.Info("database seeded", "users", 4, "vehicles", len(vehicles))
		return nil
	})
}
