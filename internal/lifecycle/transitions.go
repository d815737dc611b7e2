// Package lifecycle is the single source of truth for ride status
// transitions. Both the status-update validation in RideService and the
// allowed-transition projection returned to clients consult this table,
// so the two can never drift apart.
package lifecycle

import "github.com/ridewise/ridewise-backend/internal/models"

// Transition is one allowed edge in the ride state machine, keyed by the
// role of the actor requesting it. Rights are asymmetric: only the owning
// driver advances a ride, while the requesting passenger may only bail out
// with CANCELLED (the driver-side analogue from REQUESTED is REJECTED).
type Transition struct {
	Role string
	From models.RideStatus
	To   models.RideStatus
}

var transitions = []Transition{
	// Driver (vehicle owner) path
	{Role: models.RoleDriver, From: models.RideRequested, To: models.RideAccepted},
	{Role: models.RoleDriver, From: models.RideRequested, To: models.RideRejected},
	{Role: models.RoleDriver, From: models.RideAccepted, To: models.RideInProgress},
	{Role: models.RoleDriver, From: models.RideAccepted, To: models.RideCancelled},
	{Role: models.RoleDriver, From: models.RideInProgress, To: models.RideCompleted},
	{Role: models.RoleDriver, From: models.RideInProgress, To: models.RideCancelled},

	// Passenger (requester) path
	{Role: models.RolePassenger, From: models.RideRequested, To: models.RideCancelled},
	{Role: models.RolePassenger, From: models.RideAccepted, To: models.RideCancelled},
}

// Allowed reports whether the given role may move a ride from one status
// to another. Terminal states have no outgoing edges for either role.
func Allowed(role string, from, to models.RideStatus) bool {
	for _, t := range transitions {
		if t.Role == role && t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// AllowedNext returns the statuses the given role may move a ride into
// from its current status. Used to surface action affordances on ride
// detail responses.
func AllowedNext(role string, from models.RideStatus) []models.RideStatus {
	var next []models.RideStatus
	for _, t := range transitions {
		if t.Role == role && t.From == from {
			next = append(next, t.To)
		}
	}
	return next
}
