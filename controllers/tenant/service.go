package tenant

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/logger"
	"salon-booking/middleware"
	serviceModel "salon-booking/models/service"
	"salon-booking/types"
	tenantTypes "salon-booking/types/tenant"
)

// ListServices lists all services of the tenant, including inactive ones.
func (tc *TenantController) ListServices(c *fiber.Ctx) error {
	var services []serviceModel.Service
	if err := tc.DB.Where("tenant_id = ?", middleware.TenantID(c)).Order("created_at").Find(&services).Error; err != nil {
		logger.Error("Failed to list services", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Services retrieved successfully",
		Data:    services,
	})
}

// CreateService adds a bookable service.
func (tc *TenantController) CreateService(c *fiber.Ctx) error {
	var req tenantTypes.ServiceCreateRequest
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

	svc := serviceModel.Service{
		TenantID:        middleware.TenantID(c),
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Active:          true,
	}

	if err := tc.DB.Create(&svc).Error; err != nil {
		logger.Error("Failed to create service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create service",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Service created: %s", svc.ID))

	return tc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Service created successfully",
		Data:    svc,
	})
}

// UpdateService edits a bookable service.
func (tc *TenantController) UpdateService(c *fiber.Ctx) error {
	var req tenantTypes.ServiceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	var svc serviceModel.Service
	if err := tc.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), middleware.TenantID(c)).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Service not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "duration_minutes must be positive",
				Data:    nil,
			})
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		svc.PriceCents = *req.PriceCents
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := tc.DB.Save(&svc).Error; err != nil {
		logger.Error("Failed to update service", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update service",
			Data:    nil,
		})
	}

	return tc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Service updated successfully",
		Data:    svc,
	})
}
