package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideCompleted)

	review, err := svc.CreateReview(passenger.ID, &dto.CreateReviewRequest{
		RideID:  ride.ID.String(),
		Rating:  5,
		Comment: "smooth ride",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "smooth ride", review.Comment)

	// Retrievable with the same content.
	got, err := svc.GetRideReview(ride.ID, passenger.ID, models.RolePassenger)
	require.NoError(t, err)
	assert.Equal(t, review.ID, got.ID)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "smooth ride", got.Comment)

	// The owning driver can read it too.
	_, err = svc.GetRideReview(ride.ID, driver.ID, models.RoleDriver)
	assert.NoError(t, err)
}

func TestCreateReviewDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideCompleted)

	req := &dto.CreateReviewRequest{RideID: ride.ID.String(), Rating: 4}

	_, err := svc.CreateReview(passenger.ID, req)
	require.NoError(t, err)

	_, err = svc.CreateReview(passenger.ID, req)
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestCreateReviewGuards(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	stranger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)

	_, err := svc.CreateReview(passenger.ID, &dto.CreateReviewRequest{RideID: uuid.New().String(), Rating: 5})
	assert.ErrorIs(t, err, ErrRideNotFound)

	completed := createRide(t, db, passenger.ID, vehicle.ID, models.RideCompleted)
	_, err = svc.CreateReview(stranger.ID, &dto.CreateReviewRequest{RideID: completed.ID.String(), Rating: 5})
	assert.ErrorIs(t, err, ErrNotRideRequester)

	ongoing := createRide(t, db, passenger.ID, vehicle.ID, models.RideInProgress)
	_, err = svc.CreateReview(passenger.ID, &dto.CreateReviewRequest{RideID: ongoing.ID.String(), Rating: 5})
	assert.ErrorIs(t, err, ErrRideNotCompleted)
}
