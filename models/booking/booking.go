package booking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking represents a single appointment slot for one staff member of a tenant.
// Bookings are never hard-deleted in normal flow; cancellations and no-shows are
// recorded through Status so the row keeps its history.
type Booking struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	StaffID  string `gorm:"type:uuid;not null;index" json:"staff_id"`

	ServiceID string `gorm:"type:uuid;not null" json:"service_id"`

	CustomerName  string  `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string  `gorm:"type:varchar(20);not null" json:"customer_phone"`
	Notes         *string `gorm:"type:text" json:"notes,omitempty"`

	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`

	Status BookingStatus `gorm:"type:varchar(20);not null" json:"status"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUID primary key when the caller did not set one.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
