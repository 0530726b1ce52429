package billing

import (
	"fmt"
)

// SubscribeRequest starts a Mercado Pago preapproval for the pro plan.
type SubscribeRequest struct {
	Plan       string `json:"plan" validate:"required,oneof=pro enterprise"`
	PayerEmail string `json:"payer_email" validate:"required,email"`
}

func (r SubscribeRequest) Validate() error {
	if r.Plan == "" {
		return fmt.Errorf("plan is required")
	}
	if r.PayerEmail == "" {
		return fmt.Errorf("payer_email is required")
	}
	return nil
}

// WebhookNotification is the minimal shape Mercado Pago posts to our webhook
// endpoint. The handler fetches the full resource before acting.
type WebhookNotification struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// PlanOverview is what the dashboard renders: the full feature matrix, the
// tenant's usage and the upgrade prompts for everything it cannot use.
type PlanOverview struct {
	Plan               string            `json:"plan"`
	EffectivePlan      string            `json:"effective_plan"`
	SubscriptionStatus string            `json:"subscription_status"`
	Features           interface{}       `json:"features"`
	BookingsThisMonth  int               `json:"bookings_this_month"`
	ActiveStaff        int               `json:"active_staff"`
	UpgradeMessages    map[string]string `json:"upgrade_messages,omitempty"`
}
