package plans

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allFeatures = []Feature{
	FeatureWhatsappNotifications,
	FeaturePaymentProcessing,
	FeatureAdvancedAnalytics,
	FeatureCustomBranding,
	FeatureMultipleStaff,
	FeatureAPIAccess,
	FeaturePrioritySupport,
	FeatureMaxBookingsPerMonth,
	FeatureMaxStaffMembers,
}

var allStatuses = []SubscriptionStatus{StatusActive, StatusPastDue, StatusCancelled, StatusInactive}

func TestPlanTableValues(t *testing.T) {
	free := GetPlanFeatures(PlanFree, StatusActive)
	assert.Equal(t, PlanFeatures{
		MaxBookingsPerMonth: 50,
		MaxStaffMembers:     1,
	}, free)

	pro := GetPlanFeatures(PlanPro, StatusActive)
	assert.Equal(t, PlanFeatures{
		WhatsappNotifications: true,
		PaymentProcessing:     true,
		AdvancedAnalytics:     true,
		CustomBranding:        true,
		MultipleStaff:         true,
		APIAccess:             false,
		PrioritySupport:       true,
		MaxBookingsPerMonth:   500,
		MaxStaffMembers:       5,
	}, pro)

	ent := GetPlanFeatures(PlanEnterprise, StatusActive)
	assert.Equal(t, PlanFeatures{
		WhatsappNotifications: true,
		PaymentProcessing:     true,
		AdvancedAnalytics:     true,
		CustomBranding:        true,
		MultipleStaff:         true,
		APIAccess:             true,
		PrioritySupport:       true,
		MaxBookingsPerMonth:   Unlimited,
		MaxStaffMembers:       Unlimited,
	}, ent)
}

func TestEffectivePlan(t *testing.T) {
	assert.Equal(t, PlanPro, EffectivePlan(PlanPro, StatusActive))
	assert.Equal(t, PlanEnterprise, EffectivePlan(PlanEnterprise, StatusActive))

	// Free stays free whatever the status says.
	for _, status := range allStatuses {
		assert.Equal(t, PlanFree, EffectivePlan(PlanFree, status))
	}

	// Non-active paid subscriptions collapse to free.
	for _, plan := range []Plan{PlanPro, PlanEnterprise} {
		for _, status := range []SubscriptionStatus{StatusPastDue, StatusCancelled, StatusInactive} {
			assert.Equal(t, PlanFree, EffectivePlan(plan, status), "plan=%s status=%s", plan, status)
		}
	}
}

func TestEffectivePlanCollapseMatchesFree(t *testing.T) {
	// For any paid plan and any non-active status, every feature answer must
	// equal the free-plan answer.
	for _, plan := range []Plan{PlanPro, PlanEnterprise} {
		for _, status := range []SubscriptionStatus{StatusPastDue, StatusCancelled, StatusInactive} {
			for _, f := range allFeatures {
				assert.Equal(t,
					HasFeatureAccess(PlanFree, status, f),
					HasFeatureAccess(plan, status, f),
					"plan=%s status=%s feature=%s", plan, status, f)
			}
		}
	}
}

func TestHasFeatureAccess(t *testing.T) {
	assert.True(t, HasFeatureAccess(PlanPro, StatusActive, FeatureWhatsappNotifications))
	assert.False(t, HasFeatureAccess(PlanPro, StatusPastDue, FeatureWhatsappNotifications))
	assert.False(t, HasFeatureAccess(PlanFree, StatusActive, FeaturePaymentProcessing))
	assert.False(t, HasFeatureAccess(PlanPro, StatusActive, FeatureAPIAccess))
	assert.True(t, HasFeatureAccess(PlanEnterprise, StatusActive, FeatureAPIAccess))

	// Quota pseudo-features are not boolean flags.
	assert.False(t, HasFeatureAccess(PlanEnterprise, StatusActive, FeatureMaxBookingsPerMonth))
}

func TestCanPerformActionQuotaBoundary(t *testing.T) {
	// Free plan allows exactly one staff member.
	assert.True(t, CanPerformAction(PlanFree, StatusActive, ActionAddStaffMember, 0))
	assert.False(t, CanPerformAction(PlanFree, StatusActive, ActionAddStaffMember, 1))
	assert.False(t, CanPerformAction(PlanFree, StatusActive, ActionAddStaffMember, 2))

	assert.True(t, CanPerformAction(PlanFree, StatusActive, ActionCreateBooking, 49))
	assert.False(t, CanPerformAction(PlanFree, StatusActive, ActionCreateBooking, 50))

	assert.True(t, CanPerformAction(PlanPro, StatusActive, ActionCreateBooking, 499))
	assert.False(t, CanPerformAction(PlanPro, StatusActive, ActionCreateBooking, 500))

	// Enterprise is unlimited.
	assert.True(t, CanPerformAction(PlanEnterprise, StatusActive, ActionCreateBooking, 1_000_000))
	assert.True(t, CanPerformAction(PlanEnterprise, StatusActive, ActionAddStaffMember, 1_000_000))

	// Unknown actions never pass.
	assert.False(t, CanPerformAction(PlanEnterprise, StatusActive, Action("delete_everything"), 0))
}

func TestCanPerformActionUsesEffectivePlan(t *testing.T) {
	// A past-due pro tenant is limited like a free one.
	assert.False(t, CanPerformAction(PlanPro, StatusPastDue, ActionAddStaffMember, 1))
	assert.True(t, CanPerformAction(PlanPro, StatusActive, ActionAddStaffMember, 1))
}

func TestMonotonicUpgrade(t *testing.T) {
	free := GetPlanFeatures(PlanFree, StatusActive)
	pro := GetPlanFeatures(PlanPro, StatusActive)

	// Upgrading free -> pro must never lose a flag.
	flagPairs := [][2]bool{
		{free.WhatsappNotifications, pro.WhatsappNotifications},
		{free.PaymentProcessing, pro.PaymentProcessing},
		{free.AdvancedAnalytics, pro.AdvancedAnalytics},
		{free.CustomBranding, pro.CustomBranding},
		{free.MultipleStaff, pro.MultipleStaff},
		{free.APIAccess, pro.APIAccess},
		{free.PrioritySupport, pro.PrioritySupport},
	}
	for i, pair := range flagPairs {
		if pair[0] {
			assert.True(t, pair[1], "flag %d lost on upgrade", i)
		}
	}

	quotaAtLeast := func(lower, higher int) bool {
		if higher == Unlimited {
			return true
		}
		return lower != Unlimited && higher >= lower
	}
	assert.True(t, quotaAtLeast(free.MaxBookingsPerMonth, pro.MaxBookingsPerMonth))
	assert.True(t, quotaAtLeast(free.MaxStaffMembers, pro.MaxStaffMembers))
}

func TestUpgradeMessages(t *testing.T) {
	for _, f := range allFeatures {
		assert.NotEmpty(t, UpgradeMessage(f), "feature %s has no upgrade message", f)
	}

	msg := UpgradeMessage(FeaturePaymentProcessing)
	assert.True(t, strings.Contains(msg, "Pro"), "payment message should mention Pro: %q", msg)
	assert.True(t, strings.Contains(msg, "Mercado Pago"), "payment message should mention Mercado Pago: %q", msg)

	// Total even over junk input.
	assert.NotEmpty(t, UpgradeMessage(Feature("definitely-not-a-feature")))
}

func TestEnumValidation(t *testing.T) {
	for _, p := range []Plan{PlanFree, PlanPro, PlanEnterprise} {
		assert.True(t, p.IsValid())
	}
	assert.False(t, Plan("premium").IsValid())

	for _, s := range allStatuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, SubscriptionStatus("trialing").IsValid())

	// Unknown plan values degrade to free entitlements.
	assert.Equal(t, GetPlanFeatures(PlanFree, StatusActive), GetPlanFeatures(Plan("premium"), StatusActive))
}
