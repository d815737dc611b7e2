package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReviewExists     = errors.New("you have already reviewed this ride")
	ErrReviewNotFound   = errors.New("review not found")
	ErrRideNotCompleted = errors.New("you can only review completed rides")
	ErrNotRideRequester = errors.New("you can only review rides you requested")
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview attaches the single allowed review to a completed ride. The
// reviewer must be the ride's requester; the unique index on ride_id backs
// the duplicate check against races.
func (s *ReviewService) CreateReview(reviewerID uuid.UUID, req *dto.CreateReviewRequest) (*models.Review, error) {
	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return nil, ErrRideNotFound
	}

	var ride models.Ride
	if err := s.db.First(&ride, "id = ?", rideID).Error; err != nil {
		return nil, ErrRideNotFound
	}

	if ride.UserID != reviewerID {
		return nil, ErrNotRideRequester
	}

	if ride.Status != models.RideCompleted {
		return nil, ErrRideNotCompleted
	}

	var existing models.Review
	if err := s.db.Where("ride_id = ?", rideID).First(&existing).Error; err == nil {
		return nil, ErrReviewExists
	}

	review := models.Review{
		ID:      uuid.New(),
		UserID:  reviewerID,
		RideID:  rideID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &review, nil
}

// GetRideReview returns the review for a ride, visible to the requester and
// the owning driver.
func (s *ReviewService) GetRideReview(rideID, userID uuid.UUID, role string) (*models.Review, error) {
	var ride models.Ride
	err := s.db.Preload("Vehicle").First(&ride, "id = ?", rideID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ride: %w", err)
	}

	if err := authorizeActor(&ride, userID, role); err != nil {
		return nil, err
	}

	var review models.Review
	if err := s.db.Where("ride_id = ?", rideID).First(&review).Error; err != nil {
		return nil, ErrReviewNotFound
	}
	return &review, nil
}
