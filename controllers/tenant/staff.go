package tenant

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/logger"
	"salon-booking/middleware"
	staffModel "salon-booking/models/staff"
	"salon-booking/services/plans"
	"salon-booking/services/usage"
	"salon-booking/types"
	tenantTypes "salon-booking/types/tenant"
)

// ListStaff lists all staff members of the tenant, including inactive ones.
func (tc *TenantController) ListStaff(c *fiber.Ctx) error {
	var members []staffModel.Staff
	if err := tc.DB.Where("tenant_id = ?", middleware.TenantID(c)).Order("created_at").Find(&members).Error; err != nil {
		logger.Error("Failed to list staff", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Staff retrieved successfully",
		Data:    members,
	})
}

// CreateStaff adds a staff member, enforcing the plan's staff quota. The
// count is taken at request time; the quota is the maximum allowed, so a
// tenant already at the limit is rejected.
func (tc *TenantController) CreateStaff(c *fiber.Ctx) error {
	var req tenantTypes.StaffCreateRequest
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

	count, err := usage.ActiveStaffCount(tc.DB, t.ID)
	if err != nil {
		logger.Error("Failed to count staff", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if !plans.CanPerformAction(t.Plan, t.SubscriptionStatus, plans.ActionAddStaffMember, count) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: plans.UpgradeMessage(plans.FeatureMaxStaffMembers),
			Data:    nil,
		})
	}

	member := staffModel.Staff{
		TenantID: t.ID,
		Name:     req.Name,
		Active:   true,
	}
	if req.Phone != "" {
		member.Phone = &req.Phone
	}

	if err := tc.DB.Create(&member).Error; err != nil {
		logger.Error("Failed to create staff member", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create staff member",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Staff member created: %s", member.ID))

	return tc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Staff member created successfully",
		Data:    member,
	})
}

// UpdateStaff renames or (de)activates a staff member. Re-activating counts
// against the staff quota just like creating.
func (tc *TenantController) UpdateStaff(c *fiber.Ctx) error {
	var req tenantTypes.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	tenantID := middleware.TenantID(c)

	var member staffModel.Staff
	if err := tc.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), tenantID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Staff member not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find staff member", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if req.Active != nil && *req.Active && !member.Active {
		t, err := tc.currentTenant(c)
		if err != nil {
			logger.Error("Failed to find tenant", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Internal server error",
				Data:    nil,
			})
		}
		count, err := usage.ActiveStaffCount(tc.DB, tenantID)
		if err != nil {
			logger.Error("Failed to count staff", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Internal server error",
				Data:    nil,
			})
		}
		if !plans.CanPerformAction(t.Plan, t.SubscriptionStatus, plans.ActionAddStaffMember, count) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: plans.UpgradeMessage(plans.FeatureMaxStaffMembers),
				Data:    nil,
			})
		}
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := tc.DB.Save(&member).Error; err != nil {
		logger.Error("Failed to update staff member", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update staff member",
			Data:    nil,
		})
	}

	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Staff member updated successfully",
		Data:    member,
	})
}
