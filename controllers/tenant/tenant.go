package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/logger"
	"salon-booking/middleware"
	tenantModel "salon-booking/models/tenant"
	"salon-booking/services/plans"
	"salon-booking/types"
	tenantTypes "salon-booking/types/tenant"
	"salon-booking/utils"
)

// TenantController handles tenant profile, settings, staff and service management
type TenantController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewTenantController creates a new tenant controller
func NewTenantController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TenantController {
	return &TenantController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// logAPIRequest pushes a sanitized copy of the request and response to the
// async logger.
func (tc *TenantController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	tc.Logger.Log(logEntry)
}

// sendResponseWithLog sends the response and records it in one call.
func (tc *TenantController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	tc.logAPIRequest(c)
	return result
}

func (tc *TenantController) currentTenant(c *fiber.Ctx) (*tenantModel.Tenant, error) {
	var t tenantModel.Tenant
	if err := tc.DB.First(&t, "id = ?", middleware.TenantID(c)).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Show returns the authenticated tenant's profile and settings.
func (tc *TenantController) Show(c *fiber.Ctx) error {
	t, err := tc.currentTenant(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Tenant not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find tenant", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tenant retrieved successfully",
		Data:    t,
	})
}

// UpdateSettings updates the tenant name and structured settings. Branding
// fields and the integration toggles are gated on the effective plan, so a
// lapsed subscription cannot keep using paid configuration.
func (tc *TenantController) UpdateSettings(c *fiber.Ctx) error {
	var req tenantTypes.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	t, err := tc.currentTenant(c)
	if err != nil {
		logger.Error("Failed to find tenant", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if req.Settings != nil {
		s := *req.Settings

		if (s.BrandColor != "" || s.LogoURL != "") &&
			!plans.HasFeatureAccess(t.Plan, t.SubscriptionStatus, plans.FeatureCustomBranding) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: plans.UpgradeMessage(plans.FeatureCustomBranding),
				Data:    nil,
			})
		}
		if s.WhatsappEnabled &&
			!plans.HasFeatureAccess(t.Plan, t.SubscriptionStatus, plans.FeatureWhatsappNotifications) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: plans.UpgradeMessage(plans.FeatureWhatsappNotifications),
				Data:    nil,
			})
		}
		if s.PaymentEnabled &&
			!plans.HasFeatureAccess(t.Plan, t.SubscriptionStatus, plans.FeaturePaymentProcessing) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: plans.UpgradeMessage(plans.FeaturePaymentProcessing),
				Data:    nil,
			})
		}

		t.Settings = s
	}
	if req.Name != nil {
		t.Name = *req.Name
	}

	if err := tc.DB.Save(t).Error; err != nil {
		logger.Error("Failed to update tenant settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update settings",
			Data:    nil,
		})
	}

	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Settings updated successfully",
		Data:    t,
	})
}
