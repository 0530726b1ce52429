package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is one bookable person working for a tenant. The free plan allows a
// single active staff member; the add-staff quota is enforced at creation time.
type Staff struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	Name   string  `gorm:"type:varchar(255);not null" json:"name"`
	Phone  *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Active bool    `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUID primary key when the caller did not set one.
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
