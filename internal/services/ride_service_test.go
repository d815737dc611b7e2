package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ridewise/ridewise-backend/internal/dto"
	"github.com/ridewise/ridewise-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func rideRequest(vehicleID uuid.UUID) *dto.CreateRideRequest {
	return &dto.CreateRideRequest{
		VehicleID:       vehicleID.String(),
		PickupLocation:  "Central Station",
		DropoffLocation: "Airport",
		PickupTime:      time.Now().Add(time.Hour).Format(time.RFC3339),
	}
}

func TestRequestRide(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)

	ride, err := svc.RequestRide(passenger.ID, rideRequest(vehicle.ID))
	require.NoError(t, err)

	assert.Equal(t, models.RideRequested, ride.Status)
	assert.Equal(t, passenger.ID, ride.UserID)
	assert.Equal(t, vehicle.ID, ride.VehicleID)
	assert.Greater(t, ride.Price, 0.0)
	assert.Nil(t, ride.CompletedAt)
}

func TestRequestRidePastPickupTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)

	req := rideRequest(vehicle.ID)
	req.PickupTime = time.Now().Add(-time.Hour).Format(time.RFC3339)

	_, err := svc.RequestRide(passenger.ID, req)
	assert.ErrorIs(t, err, ErrInvalidPickupTime)

	req.PickupTime = "not-a-timestamp"
	_, err = svc.RequestRide(passenger.ID, req)
	assert.ErrorIs(t, err, ErrInvalidPickupTime)
}

func TestRequestRideUnavailableVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, false)

	_, err := svc.RequestRide(passenger.ID, rideRequest(vehicle.ID))
	assert.ErrorIs(t, err, ErrVehicleUnavailable)

	_, err = svc.RequestRide(passenger.ID, rideRequest(uuid.New()))
	assert.ErrorIs(t, err, ErrVehicleUnavailable)
}

func TestRequestRideStaleSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	vehicle := createVehicle(t, db, driver.ID, true)

	_, err := svc.RequestRide(uuid.New(), rideRequest(vehicle.ID))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDriverLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)

	updated, err := svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideAccepted, "")
	require.NoError(t, err)
	assert.Equal(t, models.RideAccepted, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	updated, err = svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, models.RideInProgress, updated.Status)

	before := time.Now()
	updated, err = svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideCompleted, "")
	after := time.Now()
	require.NoError(t, err)
	assert.Equal(t, models.RideCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.False(t, updated.CompletedAt.Before(before))
	assert.False(t, updated.CompletedAt.After(after))

	// Terminal: nothing moves a completed ride.
	_, err = svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideInProgress, "")
	var terr *TransitionError
	assert.ErrorAs(t, err, &terr)
}

func TestUpdateStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)

	_, err := svc.UpdateStatus(uuid.New(), driver.ID, models.RoleDriver, models.RideAccepted, "")
	assert.ErrorIs(t, err, ErrRideNotFound)
}

func TestUpdateStatusWrongDriver(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	owner := createUser(t, db, models.RoleDriver)
	otherDriver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, owner.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)

	_, err := svc.UpdateStatus(ride.ID, otherDriver.ID, models.RoleDriver, models.RideAccepted, "")
	assert.ErrorIs(t, err, ErrRideForbidden)
}

func TestPassengerCancellation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)

	updated, err := svc.UpdateStatus(ride.ID, passenger.ID, models.RolePassenger, models.RideCancelled, "change of plans")
	require.NoError(t, err)
	assert.Equal(t, models.RideCancelled, updated.Status)
	assert.Equal(t, "change of plans", updated.Notes)
}

func TestPassengerForbiddenTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	otherPassenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)

	// Only CANCELLED is available to passengers; ACCEPTED -> COMPLETED is
	// rejected before the table is even consulted.
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideAccepted)
	_, err := svc.UpdateStatus(ride.ID, passenger.ID, models.RolePassenger, models.RideCompleted, "")
	assert.ErrorIs(t, err, ErrRideForbidden)

	// Not the requester.
	_, err = svc.UpdateStatus(ride.ID, otherPassenger.ID, models.RolePassenger, models.RideCancelled, "")
	assert.ErrorIs(t, err, ErrRideForbidden)

	// Terminal rides are off limits even for a cancel.
	done := createRide(t, db, passenger.ID, vehicle.ID, models.RideCompleted)
	_, err = svc.UpdateStatus(done.ID, passenger.ID, models.RolePassenger, models.RideCancelled, "")
	assert.ErrorIs(t, err, ErrRideForbidden)

	// In-progress rides are past the point of passenger cancellation; the
	// table has no passenger edge there.
	rolling := createRide(t, db, passenger.ID, vehicle.ID, models.RideInProgress)
	_, err = svc.UpdateStatus(rolling.ID, passenger.ID, models.RolePassenger, models.RideCancelled, "")
	var terr *TransitionError
	assert.ErrorAs(t, err, &terr)
}

func TestRejectStoresReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)

	updated, err := svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideRejected, "too far away")
	require.NoError(t, err)
	assert.Equal(t, models.RideRejected, updated.Status)
	assert.Equal(t, "too far away", updated.Notes)
}

func TestRejectWithoutReasonKeepsNotes(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)
	require.NoError(t, db.Model(ride).Update("notes", "please bring a child seat").Error)

	updated, err := svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideRejected, "")
	require.NoError(t, err)
	assert.Equal(t, "please bring a child seat", updated.Notes)
}

func TestConcurrentTransitionConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)

	// Flip the status out from under the service between its read and its
	// conditional write, simulating a concurrent transition.
	fired := false
	err := db.Callback().Update().Before("gorm:update").Register("test:interleave", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		db.Model(&models.Ride{}).
			Where("id = ?", ride.ID).
			UpdateColumn("status", models.RideRejected)
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ride.ID, driver.ID, models.RoleDriver, models.RideAccepted, "")
	assert.ErrorIs(t, err, ErrStatusConflict)

	var current models.Ride
	require.NoError(t, db.First(&current, "id = ?", ride.ID).Error)
	assert.Equal(t, models.RideRejected, current.Status)
}

func TestListRidesScoping(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	otherDriver := createUser(t, db, models.RoleDriver)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	otherVehicle := createVehicle(t, db, otherDriver.ID, true)

	createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)
	createRide(t, db, passenger.ID, vehicle.ID, models.RideCompleted)
	createRide(t, db, passenger.ID, otherVehicle.ID, models.RideRequested)

	// Passenger sees everything they requested.
	rides, total, err := svc.ListRides(passenger.ID, models.RolePassenger, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rides, 3)

	// Driver only sees rides targeting their own vehicles.
	rides, total, err = svc.ListRides(driver.ID, models.RoleDriver, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rides, 2)

	// Status filter narrows further.
	rides, total, err = svc.ListRides(driver.ID, models.RoleDriver, models.RideCompleted, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rides, 1)
	assert.Equal(t, models.RideCompleted, rides[0].Status)

	// Preloads carry the projection the API returns.
	require.NotNil(t, rides[0].Requester)
	require.NotNil(t, rides[0].Vehicle)
	require.NotNil(t, rides[0].Vehicle.Owner)
	assert.Equal(t, driver.ID, rides[0].Vehicle.Owner.ID)
}

func TestGetRideAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewRideService(db, testConfig())

	driver := createUser(t, db, models.RoleDriver)
	stranger := createUser(t, db, models.RolePassenger)
	passenger := createUser(t, db, models.RolePassenger)
	vehicle := createVehicle(t, db, driver.ID, true)
	ride := createRide(t, db, passenger.ID, vehicle.ID, models.RideRequested)

	got, err := svc.GetRide(ride.ID, passenger.ID, models.RolePassenger)
	require.NoError(t, err)
	assert.Equal(t, ride.ID, got.ID)

	got, err = svc.GetRide(ride.ID, driver.ID, models.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, ride.ID, got.ID)

	_, err = svc.GetRide(ride.ID, stranger.ID, models.RolePassenger)
	assert.ErrorIs(t, err, ErrRideForbidden)
}
