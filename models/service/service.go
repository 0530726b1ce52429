package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is one offering a customer can book (haircut, coloring, ...).
// DurationMinutes determines the length of the booked slot.
type Service struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	Name            string `gorm:"type:varchar(255);not null" json:"name"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	PriceCents      int64  `gorm:"not null;default:0" json:"price_cents"`
	Active          bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUID primary key when the caller did not set one.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name for the Service model
func (Service) TableName() string {
	return "services"
}
