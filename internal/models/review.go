package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is limited to one per ride, enforced by the unique index on RideID.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RideID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"ride_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
