package auth

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"salon-booking/logger"
	tenantModel "salon-booking/models/tenant"
	userModel "salon-booking/models/user"
	"salon-booking/services/plans"
	"salon-booking/types"
	authTypes "salon-booking/types/auth"
	"salon-booking/utils"
)

// AuthController handles tenant registration and dashboard login
type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// logAPIRequest pushes a sanitized copy of the request and response to the
// async logger. Password fields are redacted before the entry is queued.
func (ac *AuthController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	ac.Logger.Log(logEntry)
}

// sendResponseWithLog sends the response and records it in one call.
func (ac *AuthController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.logAPIRequest(c)
	return result
}

// Register creates a tenant together with its owner login. New tenants start
// on the free plan with an inactive subscription.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
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

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.BusinessName)
	}
	if !utils.ValidateSlug(slug) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid slug",
			Data:    nil,
		})
	}
	if !utils.ValidatePhoneNumber(req.Phone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid phone number",
			Data:    nil,
		})
	}

	// Check slug and email uniqueness up front for friendly errors; the
	// unique constraints are the real guard.
	var count int64
	ac.DB.Model(&tenantModel.Tenant{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "A business with this slug already exists",
			Data:    nil,
		})
	}
	ac.DB.Model(&userModel.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "A user with this email already exists",
			Data:    nil,
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	var tenant tenantModel.Tenant
	var owner userModel.User

	// Use DB.Transaction for automatic rollback on error
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		tenant = tenantModel.Tenant{
			Slug:               slug,
			Name:               req.BusinessName,
			Phone:              req.Phone,
			Plan:               plans.PlanFree,
			SubscriptionStatus: plans.StatusInactive,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			logger.Error("Failed to create tenant", err)
			return err
		}

		owner = userModel.User{
			TenantID:     tenant.ID,
			Name:         req.OwnerName,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         userModel.RoleOwner,
		}
		if err := tx.Create(&owner).Error; err != nil {
			logger.Error("Failed to create owner user", err)
			return err
		}

		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to register business",
			Data:    nil,
		})
	}

	token, err := utils.GenerateToken(&owner)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Registered but failed to create session",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Tenant registered: %s (%s)", tenant.Name, tenant.Slug))

	return ac.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Business registered successfully",
		Token:   token,
		Data: fiber.Map{
			"tenant": tenant,
			"user":   owner,
		},
	})
}

// Login authenticates a dashboard user and returns a JWT.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
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

	var u userModel.User
	if err := ac.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid email or password",
				Data:    nil,
			})
		}
		logger.Error("Failed to find user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return ac.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid email or password",
			Data:    nil,
		})
	}

	token, err := utils.GenerateToken(&u)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Token:   token,
		Data:    u,
	})
}

// Logout clears the access cookie.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
		Data:    nil,
	})
}
