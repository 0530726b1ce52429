package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salon-booking/services/plans"
)

// Tenant is one business (barbershop, salon) on the platform. Slug is the key
// of its public booking page. Plan and SubscriptionStatus are mutated by the
// billing webhook; everything that gates features reads them fresh on each
// request — there is no cached "effective plan" anywhere.
type Tenant struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string `gorm:"type:varchar(100);not null;unique" json:"slug"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	Phone string  `gorm:"type:varchar(20);not null" json:"phone"`
	Email *string `gorm:"type:varchar(255);unique" json:"email,omitempty"`

	Plan               plans.Plan               `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	SubscriptionStatus plans.SubscriptionStatus `gorm:"type:varchar(20);not null;default:'inactive'" json:"subscription_status"`

	Settings Settings `gorm:"type:jsonb" json:"settings"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a UUID primary key when the caller did not set one.
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// EffectivePlan resolves the plan that actually applies right now, collapsing
// non-active paid subscriptions back to free.
func (t *Tenant) EffectivePlan() plans.Plan {
	return plans.EffectivePlan(t.Plan, t.SubscriptionStatus)
}

// TableName sets the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}
