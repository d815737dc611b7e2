package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrNotVehicleOwner = errors.New("you don't have permission to manage this vehicle")
	ErrActiveRides     = errors.New("cannot delete vehicle with active rides")
	ErrInvalidYear     = errors.New("invalid vehicle year")
)

type VehicleService struct {
	db *gorm.DB
}

func NewVehicleService(db *gorm.DB) *VehicleService {
	return &VehicleService{db: db}
}

func (s *VehicleService) CreateVehicle(ownerID uuid.UUID, req *dto.VehicleRequest, imageURL *string) (*models.Vehicle, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	// Stale-session guard, same as ride requests.
	var owner models.User
	if err := s.db.Select("id").First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	vehicle := models.Vehicle{
		ID:           uuid.New(),
		UserID:       ownerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Capacity:     req.Capacity,
		Description:  req.Description,
		VehicleType:  req.VehicleType,
		Available:    available,
	}
	if imageURL != nil {
		vehicle.ImageURL = imageURL
	} else if req.ImageURL != "" {
		vehicle.ImageURL = &req.ImageURL
	}

	if err := s.db.Create(&vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return &vehicle, nil
}

func (s *VehicleService) UpdateVehicle(vehicleID, ownerID uuid.UUID, req *dto.VehicleRequest, imageURL *string) (*models.Vehicle, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	vehicle, err := s.getOwned(vehicleID, ownerID)
	if err != nil {
		return nil, err
	}

	vehicle.Make = req.Make
	vehicle.Model = req.Model
	vehicle.Year = req.Year
	vehicle.LicensePlate = req.LicensePlate
	vehicle.Capacity = req.Capacity
	vehicle.Description = req.Description
	vehicle.VehicleType = req.VehicleType
	if req.Available != nil {
		vehicle.Available = *req.Available
	}
	// New upload wins, then an explicit URL; otherwise the image is kept.
	if imageURL != nil {
		vehicle.ImageURL = imageURL
	} else if req.ImageURL != "" {
		vehicle.ImageURL = &req.ImageURL
	}

	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return vehicle, nil
}

// DeleteVehicle refuses while any ride on the vehicle is still live.
// Finished rides keep their vehicle_id pointing at the soft-deleted row.
func (s *VehicleService) DeleteVehicle(vehicleID, ownerID uuid.UUID) error {
	vehicle, err := s.getOwned(vehicleID, ownerID)
	if err != nil {
		return err
	}

	var active int64
	err = s.db.Model(&models.Ride{}).
		Where("vehicle_id = ? AND status IN ?", vehicleID, models.ActiveRideStatuses).
		Count(&active).Error
	if err != nil {
		return fmt.Errorf("failed to count active rides: %w", err)
	}
	if active > 0 {
		return ErrActiveRides
	}

	return s.db.Delete(vehicle).Error
}

// GetVehicle is visible to the owner and to any passenger browsing for a ride.
func (s *VehicleService) GetVehicle(vehicleID, userID uuid.UUID, role string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.First(&vehicle, "id = ?", vehicleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}

	if vehicle.UserID != userID && role != models.RolePassenger {
		return nil, ErrNotVehicleOwner
	}

	return &vehicle, nil
}

// ListOwn returns the driver's vehicles with search, type filter and ordering.
func (s *VehicleService) ListOwn(ownerID uuid.UUID, q dto.VehicleListQuery) ([]models.Vehicle, int64, error) {
	query := s.db.Model(&models.Vehicle{}).Where("user_id = ?", ownerID)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(license_plate) LIKE ? OR LOWER(description) LIKE ?",
			like, like, like, like,
		)
	}
	if q.VehicleType != "" {
		query = query.Where("vehicle_type = ?", q.VehicleType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	orderBy := q.OrderBy
	switch orderBy {
	case "make", "model", "year", "created_at", "updated_at":
	default:
		orderBy = "updated_at"
	}
	order := "DESC"
	if q.Order == "asc" {
		order = "ASC"
	}

	var vehicles []models.Vehicle
	err := query.
		Order(orderBy + " " + order).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, total, nil
}

// ListAvailable feeds the passenger-side request form.
func (s *VehicleService) ListAvailable(page, limit int) ([]models.Vehicle, int64, error) {
	query := s.db.Model(&models.Vehicle{}).Where("available = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	var vehicles []models.Vehicle
	err := query.
		Preload("Owner").
		Order("updated_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, total, nil
}

func (s *VehicleService) getOwned(vehicleID, ownerID uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.First(&vehicle, "id = ?", vehicleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicle: %w", err)
	}
	if vehicle.UserID != ownerID {
		return nil, ErrNotVehicleOwner
	}
	return &vehicle, nil
}

func validateYear(year int) error {
	if year < 1900 || year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	return nil
}
