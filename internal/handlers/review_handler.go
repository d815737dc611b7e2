package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/auth"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview handles POST /reviews. Passenger role is enforced by middleware.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReviewRequest
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

	review, err := h.reviewService.CreateReview(sess.UserID, &req)
	if err != nil {
		return reviewError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetRideReview handles GET /reviews/ride/:rideId.
func (h *ReviewHandler) GetRideReview(c *fiber.Ctx) error {
	sess, err := auth.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	rideID, err := uuid.Parse(c.Params("rideId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Ride not found",
		})
	}

	review, err := h.reviewService.GetRideReview(rideID, sess.UserID, sess.Role)
	if err != nil {
		return reviewError(c, err)
	}

	return c.JSON(review)
}

func reviewError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrRideNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Ride not found",
		})
	case errors.Is(err, services.ErrReviewNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Review not found",
		})
	case errors.Is(err, services.ErrNotRideRequester), errors.Is(err, services.ErrRideForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrRideNotCompleted):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrReviewExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return internalError(c, "review operation", err)
	}
}
