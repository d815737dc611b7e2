package dto

import (
	"github.com/ridewise/ridewise-backend/internal/models"
)

// VehicleRequest covers create and update. Sent as multipart/form-data so an
// image file can ride along; the file itself is handled in the handler.
type VehicleRequest struct {
	Make         string `json:"make" form:"make" validate:"required"`
	Model        string `json:"model" form:"model" validate:"required"`
	Year         int    `json:"year" form:"year" validate:"required,min=1900"`
	LicensePlate string `json:"license_plate" form:"license_plate" validate:"required"`
	Capacity     int    `json:"capacity" form:"capacity" validate:"required,min=1,max=50"`
	Description  string `json:"description" form:"description" validate:"required,min=20"`
	VehicleType  string `json:"vehicle_type" form:"vehicle_type" validate:"required"`
	ImageURL     string `json:"image_url" form:"image_url"`
	Available    *bool  `json:"available" form:"available"`
}

type VehiclesListResponse struct {
	Vehicles   []models.Vehicle `json:"vehicles"`
	Pagination Pagination       `json:"pagination"`
}

// VehicleListQuery captures the supported list filters.
type VehicleListQuery struct {
	Page        int
	Limit       int
	Search      string
	VehicleType string
	OrderBy     string
	Order       string
}
