// Package plans is the single authority for "can this tenant do X".
// Every decision is a pure lookup against the static plan table below;
// nothing here touches the database or caches tenant state.
package plans

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

func (p Plan) String() string {
	return string(p)
}

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	default:
		return false
	}
}

// SubscriptionStatus is the billing state of a tenant's subscription. It is
// mutated only by the billing webhook handler; this package just reads it.
type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusInactive  SubscriptionStatus = "inactive"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusPastDue, StatusCancelled, StatusInactive:
		return true
	default:
		return false
	}
}

// Feature is one gated capability. The two Max* entries are quota
// pseudo-features: they never appear in feature checks but they do have
// upgrade messages.
type Feature string

const (
	FeatureWhatsappNotifications Feature = "whatsappNotifications"
	FeaturePaymentProcessing     Feature = "paymentProcessing"
	FeatureAdvancedAnalytics     Feature = "advancedAnalytics"
	FeatureCustomBranding        Feature = "customBranding"
	FeatureMultipleStaff         Feature = "multipleStaff"
	FeatureAPIAccess             Feature = "apiAccess"
	FeaturePrioritySupport       Feature = "prioritySupport"
	FeatureMaxBookingsPerMonth   Feature = "maxBookingsPerMonth"
	FeatureMaxStaffMembers       Feature = "maxStaffMembers"
)

// Action is a quota-limited mutation.
type Action string

const (
	ActionCreateBooking  Action = "create_booking"
	ActionAddStaffMember Action = "add_staff_member"
)

// Unlimited marks a quota with no cap.
const Unlimited = -1

// PlanFeatures is the full entitlement record for one plan.
type PlanFeatures struct {
	WhatsappNotifications bool `json:"whatsapp_notifications"`
	PaymentProcessing     bool `json:"payment_processing"`
	AdvancedAnalytics     bool `json:"advanced_analytics"`
	CustomBranding        bool `json:"custom_branding"`
	MultipleStaff         bool `json:"multiple_staff"`
	APIAccess             bool `json:"api_access"`
	PrioritySupport       bool `json:"priority_support"`

	MaxBookingsPerMonth int `json:"max_bookings_per_month"`
	MaxStaffMembers     int `json:"max_staff_members"`
}

// planFeatures is the static plan table, defined once and never mutated.
var planFeatures = map[Plan]PlanFeatures{
	PlanFree: {
		WhatsappNotifications: false,
		PaymentProcessing:     false,
		AdvancedAnalytics:     false,
		CustomBranding:        false,
		MultipleStaff:         false,
		APIAccess:             false,
		PrioritySupport:       false,
		MaxBookingsPerMonth:   50,
		MaxStaffMembers:       1,
	},
	PlanPro: {
		WhatsappNotifications: true,
		PaymentProcessing:     true,
		AdvancedAnalytics:     true,
		CustomBranding:        true,
		MultipleStaff:         true,
		APIAccess:             false,
		PrioritySupport:       true,
		MaxBookingsPerMonth:   500,
		MaxStaffMembers:       5,
	},
	PlanEnterprise: {
		WhatsappNotifications: true,
		PaymentProcessing:     true,
		AdvancedAnalytics:     true,
		CustomBranding:        true,
		MultipleStaff:         true,
		APIAccess:             true,
		PrioritySupport:       true,
		MaxBookingsPerMonth:   Unlimited,
		MaxStaffMembers:       Unlimited,
	},
}

// EffectivePlan collapses a paid plan back to free whenever its subscription
// is not active. A non-active paid subscription never grants paid privileges.
func EffectivePlan(plan Plan, status SubscriptionStatus) Plan {
	if plan == PlanFree || status == StatusActive {
		if _, ok := planFeatures[plan]; ok {
			return plan
		}
		return PlanFree
	}
	return PlanFree
}

// GetPlanFeatures returns the full feature record for the effective plan.
func GetPlanFeatures(plan Plan, status SubscriptionStatus) PlanFeatures {
	return planFeatures[EffectivePlan(plan, status)]
}

// HasFeatureAccess reports whether the tenant's effective plan includes the
// given feature. Quota pseudo-features always report false here; use
// CanPerformAction for those.
func HasFeatureAccess(plan Plan, status SubscriptionStatus, feature Feature) bool {
	f := GetPlanFeatures(plan, status)
	switch feature {
	case FeatureWhatsappNotifications:
		return f.WhatsappNotifications
	case FeaturePaymentProcessing:
		return f.PaymentProcessing
	case FeatureAdvancedAnalytics:
		return f.AdvancedAnalytics
	case FeatureCustomBranding:
		return f.CustomBranding
	case FeatureMultipleStaff:
		return f.MultipleStaff
	case FeatureAPIAccess:
		return f.APIAccess
	case FeaturePrioritySupport:
		return f.PrioritySupport
	default:
		return false
	}
}

// CanPerformAction reports whether the tenant may perform a quota-limited
// action given its current usage. The quota is the maximum allowed count:
// usage strictly below the quota passes, reaching it blocks.
func CanPerformAction(plan Plan, status SubscriptionStatus, action Action, currentUsage int) bool {
	f := GetPlanFeatures(plan, status)

	var quota int
	switch action {
	case ActionCreateBooking:
		quota = f.MaxBookingsPerMonth
	case ActionAddStaffMember:
		quota = f.MaxStaffMembers
	default:
		return false
	}

	if quota == Unlimited {
		return true
	}
	return currentUsage < quota
}

// upgradeMessages covers every feature, including the quota pseudo-features.
var upgradeMessages = map[Feature]string{
	FeatureWhatsappNotifications: "Upgrade to Pro to send booking confirmations and reminders over WhatsApp.",
	FeaturePaymentProcessing:     "Upgrade to Pro to accept online payments through Mercado Pago.",
	FeatureAdvancedAnalytics:     "Upgrade to Pro to unlock advanced analytics for your business.",
	FeatureCustomBranding:        "Upgrade to Pro to customize your booking page with your own brand.",
	FeatureMultipleStaff:         "Upgrade to Pro to manage bookings for multiple staff members.",
	FeatureAPIAccess:             "API access is available on the Enterprise plan.",
	FeaturePrioritySupport:       "Upgrade to Pro to get priority support.",
	FeatureMaxBookingsPerMonth:   "You reached this month's booking limit. Upgrade your plan to accept more bookings.",
	FeatureMaxStaffMembers:       "You reached your plan's staff limit. Upgrade your plan to add more staff members.",
}

// UpgradeMessage returns the human-readable upgrade prompt for a feature.
// Total over the feature set; unknown values get a generic prompt rather
// than an empty string.
func UpgradeMessage(feature Feature) string {
	if msg, ok := upgradeMessages[feature]; ok {
		return msg
	}
	return "Upgrade your plan to use this feature."
}
