package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Make         string         `gorm:"not null;size:100" json:"make"`
	Model        string         `gorm:"not null;size:100" json:"model"`
	Year         int            `gorm:"not null" json:"year"`
	LicensePlate string         `gorm:"not null;size:20" json:"license_plate"`
	Capacity     int            `gorm:"not null" json:"capacity"`
	Description  string         `gorm:"type:text" json:"description"`
	VehicleType  string         `gorm:"not null;size:50" json:"vehicle_type"`
	ImageURL     *string        `gorm:"type:text" json:"image_url"`
	Available    bool           `gorm:"default:true" json:"available"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Owner *User `gorm:"foreignKey:UserID" json:"owner,omitempty"`
}
