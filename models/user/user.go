package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a dashboard login for a tenant. The first user of a tenant is
// created as owner during registration; owners can invite staff users later.
type User struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone        *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role    `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// Role restricts what a dashboard user may do within their tenant.
type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleStaff
}

// BeforeCreate assigns a UUID primary key when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
