package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/auth"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/lifecycle"
	"github.com/ridewise/ridewise-backend/internal/models"
	"github.com/ridewise/ridewise-backend/internal/services"
)

type RideHandler struct {
	rideService *services.RideService
}

func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// RequestRide handles POST /rides. Passenger role is enforced by middleware.
func (h *RideHandler) RequestRide(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateRideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	ride, err := h.rideService.RequestRide(sess.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPickupTime):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found. Please log out and log in again.",
			})
		case errors.Is(err, services.ErrVehicleUnavailable):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return internalError(c, "create ride", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewRideResponse(ride))
}

// ListRides handles GET /rides with optional status filter and pagination.
func (h *RideHandler) ListRides(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	status := models.RideStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "invalid status filter",
		})
	}

	page, limit := pageParams(c, 10)

	rides, total, err := h.rideService.ListRides(sess.UserID, sess.Role, status, page, limit)
	if err != nil {
		return internalError(c, "list rides", err)
	}

	resp := dto.RidesListResponse{
		Rides:      make([]dto.RideResponse, 0, len(rides)),
		Pagination: dto.NewPagination(total, page, limit),
	}
	for i := range rides {
		resp.Rides = append(resp.Rides, dto.NewRideResponse(&rides[i]))
	}

	return c.JSON(resp)
}

// GetRide handles GET /rides/:id and includes the caller's allowed
// transitions so clients render exactly the actions the engine will accept.
func (h *RideHandler) GetRide(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	rideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Ride not found",
		})
	}

	ride, err := h.rideService.GetRide(rideID, sess.UserID, sess.Role)
	if err != nil {
		return rideError(c, err)
	}

	resp := dto.NewRideResponse(ride)
	resp.AllowedTransitions = lifecycle.AllowedNext(sess.Role, ride.Status)

	return c.JSON(resp)
}

// UpdateStatus handles PATCH /rides/:id/status.
func (h *RideHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	rideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Ride not found",
		})
	}

	var req dto.UpdateRideStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := dto.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	ride, err := h.rideService.UpdateStatus(rideID, sess.UserID, sess.Role, models.RideStatus(req.Status), req.Reason)
	if err != nil {
		return rideError(c, err)
	}

	return c.JSON(dto.NewRideResponse(ride))
}

// rideError maps ride service errors onto the HTTP taxonomy.
func rideError(c *fiber.Ctx, err error) error {
	var terr *services.TransitionError
	switch {
	case errors.Is(err, services.ErrRideNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Ride not found",
		})
	case errors.Is(err, services.ErrRideForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.As(err, &terr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: terr.Error(),
		})
	case errors.Is(err, services.ErrStatusConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return internalError(c, "ride operation", err)
	}
}
