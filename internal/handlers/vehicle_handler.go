package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/auth"
	"github.com/ridewise/ridewise-backend/internal/config"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/services"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
	cfg            *config.Config
}

func NewVehicleHandler(vehicleService *services.VehicleService, cfg *config.Config) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, cfg: cfg}
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// CreateVehicle handles POST /vehicles as multipart/form-data with an
// optional image file. Driver role is enforced by middleware.
func (h *VehicleHandler) CreateVehicle(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	req, imageURL, status, msg := h.parseVehicleForm(c)
	if status != 0 {
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}

	vehicle, err := h.vehicleService.CreateVehicle(sess.UserID, req, imageURL)
	if err != nil {
		return vehicleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// ListVehicles handles GET /vehicles for the owning driver.
func (h *VehicleHandler) ListVehicles(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit := pageParams(c, 10)
	q := dto.VehicleListQuery{
		Page:        page,
		Limit:       limit,
		Search:      c.Query("search"),
		VehicleType: c.Query("vehicle_type"),
		OrderBy:     c.Query("order_by", "updated_at"),
		Order:       c.Query("order", "desc"),
	}

	vehicles, total, err := h.vehicleService.ListOwn(sess.UserID, q)
	if err != nil {
		return internalError(c, "list vehicles", err)
	}

	return c.JSON(dto.VehiclesListResponse{
		Vehicles:   vehicles,
		Pagination: dto.NewPagination(total, page, limit),
	})
}

// ListAvailable handles GET /vehicles/available for passengers picking a
// vehicle to request a ride on.
func (h *VehicleHandler) ListAvailable(c *fiber.Ctx) error {
	page, limit := pageParams(c, 10)

	vehicles, total, err := h.vehicleService.ListAvailable(page, limit)
	if err != nil {
		return internalError(c, "list available vehicles", err)
	}

	return c.JSON(dto.VehiclesListResponse{
		Vehicles:   vehicles,
		Pagination: dto.NewPagination(total, page, limit),
	})
}

func (h *VehicleHandler) GetVehicle(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	vehicleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Vehicle not found",
		})
	}

	vehicle, err := h.vehicleService.GetVehicle(vehicleID, sess.UserID, sess.Role)
	if err != nil {
		return vehicleError(c, err)
	}

	return c.JSON(vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	vehicleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Vehicle not found",
		})
	}

	req, imageURL, status, msg := h.parseVehicleForm(c)
	if status != 0 {
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}

	vehicle, err := h.vehicleService.UpdateVehicle(vehicleID, sess.UserID, req, imageURL)
	if err != nil {
		return vehicleError(c, err)
	}

	return c.JSON(vehicle)
}

func (h *VehicleHandler) DeleteVehicle(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	vehicleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Vehicle not found",
		})
	}

	if err := h.vehicleService.DeleteVehicle(vehicleID, sess.UserID); err != nil {
		return vehicleError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Vehicle deleted successfully"})
}

// parseVehicleForm parses and validates the vehicle form plus an optional
// image upload. On failure it returns a non-zero HTTP status and message.
func (h *VehicleHandler) parseVehicleForm(c *fiber.Ctx) (*dto.VehicleRequest, *string, int, string) {
	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, fiber.StatusBadRequest, "Invalid request body"
	}
	if err := dto.Validate(&req); err != nil {
		return nil, nil, fiber.StatusBadRequest, err.Error()
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return &req, nil, 0, ""
	}

	if file.Size > 10*1024*1024 {
		return nil, nil, fiber.StatusBadRequest, "File too large. Maximum size is 10MB."
	}
	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		return nil, nil, fiber.StatusBadRequest, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed."
	}

	imageURL, err := h.saveImage(c, file)
	if err != nil {
		return nil, nil, fiber.StatusInternalServerError, "Error uploading file"
	}

	return &req, &imageURL, 0, ""
}

func (h *VehicleHandler) saveImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	if err := c.SaveFile(file, filepath.Join(h.cfg.UploadDir, filename)); err != nil {
		return "", err
	}

	return fmt.Sprintf("/uploads/vehicles/%s", filename), nil
}

func vehicleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrVehicleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Vehicle not found",
		})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found. Please log out and log in again.",
		})
	case errors.Is(err, services.ErrNotVehicleOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Forbidden",
		})
	case errors.Is(err, services.ErrActiveRides):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidYear):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return internalError(c, "vehicle operation", err)
	}
}
