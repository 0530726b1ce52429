package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	userModel "salon-booking/models/user"
	"salon-booking/types"
	"salon-booking/utils"
)

// IsAuthenticated checks for a valid JWT token and attaches its claims to the
// request context under "user".
func IsAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Fall back to the access cookie set at login.
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status": "error",
					"error":  "Authorization token missing",
				})
			}
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Session expired. Login again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tenantID, _ := claims["tenant_id"].(string)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Tenant missing in token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals("user", claims)
		c.Locals("tenant_id", tenantID)

		return c.Next()
	}
}

// RequireOwner allows only the tenant owner through. Must run after
// IsAuthenticated.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid user claims",
				Status:  fiber.StatusUnauthorized,
			})
		}
		role, _ := claims["role"].(string)
		if role != string(userModel.RoleOwner) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message: "Insufficient permissions",
				Status:  fiber.StatusForbidden,
			})
		}
		return c.Next()
	}
}

// TenantID returns the authenticated tenant id from the request context.
func TenantID(c *fiber.Ctx) string {
	tenantID, _ := c.Locals("tenant_id").(string)
	return tenantID
}

// UserID returns the authenticated user id from the request context.
func UserID(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
