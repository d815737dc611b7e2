package models

import (
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	RideRequested  RideStatus = "REQUESTED"
	RideAccepted   RideStatus = "ACCEPTED"
	RideInProgress RideStatus = "IN_PROGRESS"
	RideCompleted  RideStatus = "COMPLETED"
	RideRejected   RideStatus = "REJECTED"
	RideCancelled  RideStatus = "CANCELLED"
)

// ActiveRideStatuses are the states that block vehicle deletion.
var ActiveRideStatuses = []RideStatus{RideRequested, RideAccepted, RideInProgress}

func (s RideStatus) Valid() bool {
	switch s {
	case RideRequested, RideAccepted, RideInProgress, RideCompleted, RideRejected, RideCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this status.
func (s RideStatus) Terminal() bool {
	return s == RideCompleted || s == RideRejected || s == RideCancelled
}

type Ride struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	VehicleID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Status          RideStatus `gorm:"size:20;not null;index" json:"status"`
	PickupLocation  string     `gorm:"not null;size:255" json:"pickup_location"`
	DropoffLocation string     `gorm:"not null;size:255" json:"dropoff_location"`
	PickupTime      time.Time  `gorm:"not null" json:"pickup_time"`
	Notes           string     `gorm:"type:text" json:"notes"`
	Price           float64    `gorm:"not null" json:"price"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Requester *User    `gorm:"foreignKey:UserID" json:"requester,omitempty"`
	Vehicle   *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Review    *Review  `gorm:"foreignKey:RideID" json:"review,omitempty"`
}
