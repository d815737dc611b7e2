package lifecycle

import (
	"testing"

	"github.com/ridewise/ridewise-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDriverTransitions(t *testing.T) {
	cases := []struct {
		from    models.RideStatus
		to      models.RideStatus
		allowed bool
	}{
		{models.RideRequested, models.RideAccepted, true},
		{models.RideRequested, models.RideRejected, true},
		{models.RideRequested, models.RideInProgress, false},
		{models.RideRequested, models.RideCompleted, false},
		{models.RideRequested, models.RideCancelled, false},
		{models.RideAccepted, models.RideInProgress, true},
		{models.RideAccepted, models.RideCancelled, true},
		{models.RideAccepted, models.RideCompleted, false},
		{models.RideAccepted, models.RideRejected, false},
		{models.RideInProgress, models.RideCompleted, true},
		{models.RideInProgress, models.RideCancelled, true},
		{models.RideInProgress, models.RideAccepted, false},
	}

	for _, tc := range cases {
		got := Allowed(models.RoleDriver, tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "driver %s -> %s", tc.from, tc.to)
	}
}

func TestPassengerTransitions(t *testing.T) {
	// Passengers may only cancel, and only before the ride starts.
	assert.True(t, Allowed(models.RolePassenger, models.RideRequested, models.RideCancelled))
	assert.True(t, Allowed(models.RolePassenger, models.RideAccepted, models.RideCancelled))

	assert.False(t, Allowed(models.RolePassenger, models.RideInProgress, models.RideCancelled))
	assert.False(t, Allowed(models.RolePassenger, models.RideRequested, models.RideAccepted))
	assert.False(t, Allowed(models.RolePassenger, models.RideRequested, models.RideRejected))
	assert.False(t, Allowed(models.RolePassenger, models.RideAccepted, models.RideCompleted))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	terminals := []models.RideStatus{models.RideCompleted, models.RideRejected, models.RideCancelled}
	all := []models.RideStatus{
		models.RideRequested, models.RideAccepted, models.RideInProgress,
		models.RideCompleted, models.RideRejected, models.RideCancelled,
	}

	for _, from := range terminals {
		assert.True(t, from.Terminal())
		for _, to := range all {
			assert.False(t, Allowed(models.RoleDriver, from, to), "driver %s -> %s", from, to)
			assert.False(t, Allowed(models.RolePassenger, from, to), "passenger %s -> %s", from, to)
		}
	}
}

func TestAllowedNext(t *testing.T) {
	next := AllowedNext(models.RoleDriver, models.RideRequested)
	assert.ElementsMatch(t, []models.RideStatus{models.RideAccepted, models.RideRejected}, next)

	next = AllowedNext(models.RolePassenger, models.RideAccepted)
	assert.Equal(t, []models.RideStatus{models.RideCancelled}, next)

	assert.Empty(t, AllowedNext(models.RoleDriver, models.RideCompleted))
	assert.Empty(t, AllowedNext(models.RolePassenger, models.RideRejected))
}
