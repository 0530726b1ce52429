package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tenantModel "salon-booking/models/tenant"
	"salon-booking/services/plans"
	"salon-booking/types"
)

// RequireFeature loads the authenticated tenant and rejects the request with
// an upgrade prompt when its effective plan lacks the feature. The tenant row
// is read fresh on every request so billing-webhook transitions apply
// immediately. Must run after IsAuthenticated.
func RequireFeature(db *gorm.DB, feature plans.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := TenantID(c)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Tenant missing in token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		var t tenantModel.Tenant
		if err := db.First(&t, "id = ?", tenantID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Tenant not found",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !plans.HasFeatureAccess(t.Plan, t.SubscriptionStatus, feature) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: plans.UpgradeMessage(feature),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals("tenant", &t)
		return c.Next()
	}
}

// CurrentTenant returns the tenant loaded by RequireFeature, or nil when the
// route did not pass through it.
func CurrentTenant(c *fiber.Ctx) *tenantModel.Tenant {
	t, _ := c.Locals("tenant").(*tenantModel.Tenant)
	return t
}
