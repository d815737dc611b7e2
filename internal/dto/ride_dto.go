package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/models"
)

type CreateRideRequest struct {
	VehicleID       string `json:"vehicle_id" validate:"required,uuid"`
	PickupLocation  string `json:"pickup_location" validate:"required,min=3"`
	DropoffLocation string `json:"dropoff_location" validate:"required,min=3"`
	PickupTime      string `json:"pickup_time" validate:"required"`
	Notes           string `json:"notes"`
}

type UpdateRideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED IN_PROGRESS COMPLETED CANCELLED"`
	Reason string `json:"reason"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type VehicleSummary struct {
	ID          uuid.UUID    `json:"id"`
	Make        string       `json:"make"`
	Model       string       `json:"model"`
	VehicleType string       `json:"vehicle_type"`
	Owner       *UserSummary `json:"owner,omitempty"`
}

type ReviewSummary struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type RideResponse struct {
	ID              uuid.UUID         `json:"id"`
	Status          models.RideStatus `json:"status"`
	PickupLocation  string            `json:"pickup_location"`
	DropoffLocation string            `json:"dropoff_location"`
	PickupTime      time.Time         `json:"pickup_time"`
	Notes           string            `json:"notes"`
	Price           float64           `json:"price"`
	CompletedAt     *time.Time        `json:"completed_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Requester *UserSummary    `json:"requester,omitempty"`
	Vehicle   *VehicleSummary `json:"vehicle,omitempty"`
	Review    *ReviewSummary  `json:"review,omitempty"`

	// Statuses the caller may move this ride into, per the lifecycle table.
	AllowedTransitions []models.RideStatus `json:"allowed_transitions,omitempty"`
}

// NewRideResponse projects a ride with whatever associations were preloaded.
func NewRideResponse(ride *models.Ride) RideResponse {
	resp := RideResponse{
		ID:              ride.ID,
		Status:          ride.Status,
		PickupLocation:  ride.PickupLocation,
		DropoffLocation: ride.DropoffLocation,
		PickupTime:      ride.PickupTime,
		Notes:           ride.Notes,
		Price:           ride.Price,
		CompletedAt:     ride.CompletedAt,
		CreatedAt:       ride.CreatedAt,
		UpdatedAt:       ride.UpdatedAt,
	}

	if ride.Requester != nil {
		resp.Requester = &UserSummary{ID: ride.Requester.ID, Name: ride.Requester.Name, Email: ride.Requester.Email}
	}
	if ride.Vehicle != nil {
		resp.Vehicle = &VehicleSummary{
			ID:          ride.Vehicle.ID,
			Make:        ride.Vehicle.Make,
			Model:       ride.Vehicle.Model,
			VehicleType: ride.Vehicle.VehicleType,
		}
		if ride.Vehicle.Owner != nil {
			resp.Vehicle.Owner = &UserSummary{
				ID:    ride.Vehicle.Owner.ID,
				Name:  ride.Vehicle.Owner.Name,
				Email: ride.Vehicle.Owner.Email,
			}
		}
	}
	if ride.Review != nil {
		resp.Review = &ReviewSummary{Rating: ride.Review.Rating, Comment: ride.Review.Comment}
	}

	return resp
}

type RidesListResponse struct {
	Rides      []RideResponse `json:"rides"`
	Pagination Pagination     `json:"pagination"`
}
