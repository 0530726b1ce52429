package subscription

import (
	"time"

	"salon-booking/services/plans"
)

// Subscription tracks the Mercado Pago preapproval backing a tenant's paid
// plan. The tenant row carries the authoritative plan/status pair; this table
// keeps the billing-side identifiers and history needed to process webhooks.
type Subscription struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`

	Plan   plans.Plan               `gorm:"type:varchar(20);not null" json:"plan"`
	Status plans.SubscriptionStatus `gorm:"type:varchar(20);not null" json:"status"`

	PreapprovalID *string `gorm:"type:varchar(255);unique" json:"preapproval_id,omitempty"`
	PayerEmail    *string `gorm:"type:varchar(255)" json:"payer_email,omitempty"`

	LastPaymentID *string    `gorm:"type:varchar(255)" json:"last_payment_id,omitempty"`
	LastPaidAt    *time.Time `json:"last_paid_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

// SubscriptionEvent records every billing webhook we acted on, for audit and
// for idempotent reprocessing.
type SubscriptionEvent struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SubscriptionID uint      `gorm:"not null;index" json:"subscription_id"`
	ExternalID     string    `gorm:"type:varchar(255);not null;index" json:"external_id"`
	EventType      string    `gorm:"type:varchar(100);not null" json:"event_type"`
	RawPayload     string    `gorm:"type:text" json:"raw_payload,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the SubscriptionEvent model
func (SubscriptionEvent) TableName() string {
	return "subscription_events"
}
