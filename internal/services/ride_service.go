package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/config"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/lifecycle"
	"github.com/ridewise/ridewise-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRideNotFound       = errors.New("ride not found")
	ErrVehicleUnavailable = errors.New("vehicle not found or not available")
	ErrRideForbidden      = errors.New("you don't have permission to update this ride")
	ErrInvalidPickupTime  = errors.New("pickup time must be a valid future date")
	ErrStatusConflict     = errors.New("ride status changed concurrently, please retry")
)

// TransitionError reports an illegal edge with both endpoints, surfaced to
// the client as a 400.
type TransitionError struct {
	From models.RideStatus
	To   models.RideStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change status from %s to %s", e.From, e.To)
}

type RideService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewRideService(db *gorm.DB, cfg *config.Config) *RideService {
	return &RideService{db: db, cfg: cfg}
}

// RequestRide creates a ride in REQUESTED state for the given passenger.
// The vehicle must exist and be flagged available; availability is only a
// gate on new requests, it is not flipped by the request itself.
func (s *RideService) RequestRide(userID uuid.UUID, req *dto.CreateRideRequest) (*models.Ride, error) {
	pickupTime, err := time.Parse(time.RFC3339, req.PickupTime)
	if err != nil || !pickupTime.After(time.Now()) {
		return nil, ErrInvalidPickupTime
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, ErrVehicleUnavailable
	}

	// The session can outlive its user row.
	var user models.User
	if err := s.db.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var vehicle models.Vehicle
	if err := s.db.Where("id = ? AND available = ?", vehicleID, true).First(&vehicle).Error; err != nil {
		return nil, ErrVehicleUnavailable
	}

	ride := models.Ride{
		ID:              uuid.New(),
		UserID:          userID,
		VehicleID:       vehicle.ID,
		Status:          models.RideRequested,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupTime:      pickupTime,
		Notes:           req.Notes,
		Price:           s.estimatePrice(),
	}

	if err := s.db.Create(&ride).Error; err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	return &ride, nil
}

// estimatePrice is a placeholder fare model: base fare plus a per-km rate
// over a random distance, until real routing exists.
func (s *RideService) estimatePrice() float64 {
	estimatedDistance := rand.Float64() * 20
	price := s.cfg.BaseFare + s.cfg.PricePerKm*estimatedDistance
	return math.Round(price*100) / 100
}

// ListRides returns the caller's rides, newest first: a passenger sees rides
// they requested, a driver sees rides targeting their vehicles.
func (s *RideService) ListRides(userID uuid.UUID, role string, status models.RideStatus, page, limit int) ([]models.Ride, int64, error) {
	query := s.db.Model(&models.Ride{})

	if role == models.RolePassenger {
		query = query.Where("user_id = ?", userID)
	} else {
		ownVehicles := s.db.Model(&models.Vehicle{}).Select("id").Where("user_id = ?", userID)
		query = query.Where("vehicle_id IN (?)", ownVehicles)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rides: %w", err)
	}

	var rides []models.Ride
	err := query.
		Preload("Requester").
		Preload("Vehicle").
		Preload("Vehicle.Owner").
		Preload("Review").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rides).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rides: %w", err)
	}

	return rides, total, nil
}

// GetRide loads a single ride for its requester or the owning driver.
func (s *RideService) GetRide(rideID, userID uuid.UUID, role string) (*models.Ride, error) {
	ride, err := s.loadRide(rideID)
	if err != nil {
		return nil, err
	}

	if err := authorizeActor(ride, userID, role); err != nil {
		return nil, err
	}

	return ride, nil
}

// UpdateStatus applies a lifecycle transition. Checks run strictly in order
// existence, authorization, legality: failures earlier in the chain must not
// leak transition-table details. The write is conditional on the status the
// validation saw, so a concurrent transition surfaces as ErrStatusConflict
// instead of a silent lost update.
func (s *RideService) UpdateStatus(rideID, actorID uuid.UUID, role string, newStatus models.RideStatus, reason string) (*models.Ride, error) {
	ride, err := s.loadRide(rideID)
	if err != nil {
		return nil, err
	}

	if err := authorizeActor(ride, actorID, role); err != nil {
		return nil, err
	}

	if role == models.RolePassenger {
		// Passengers may only self-serve a cancellation while the ride is
		// still live; everything else is the driver's call.
		if newStatus != models.RideCancelled || ride.Status.Terminal() {
			return nil, ErrRideForbidden
		}
	}

	if !lifecycle.Allowed(role, ride.Status, newStatus) {
		return nil, &TransitionError{From: ride.Status, To: newStatus}
	}

	updates := map[string]interface{}{"status": newStatus}
	if (newStatus == models.RideRejected || newStatus == models.RideCancelled) && reason != "" {
		updates["notes"] = reason
	}
	if newStatus == models.RideCompleted {
		updates["completed_at"] = time.Now()
	}

	result := s.db.Model(&models.Ride{}).
		Where("id = ? AND status = ?", rideID, ride.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update ride status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}

	return s.loadRide(rideID)
}

func (s *RideService) loadRide(rideID uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	err := s.db.
		Preload("Requester").
		Preload("Vehicle").
		Preload("Vehicle.Owner").
		Preload("Review").
		First(&ride, "id = ?", rideID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ride: %w", err)
	}
	return &ride, nil
}

// authorizeActor enforces the shared-authority model: the requester holds
// passenger rights, the vehicle owner holds driver rights.
func authorizeActor(ride *models.Ride, actorID uuid.UUID, role string) error {
	switch role {
	case models.RoleDriver:
		if ride.Vehicle == nil || ride.Vehicle.UserID != actorID {
			return ErrRideForbidden
		}
	case models.RolePassenger:
		if ride.UserID != actorID {
			return ErrRideForbidden
		}
	default:
		return ErrRideForbidden
	}
	return nil
}
