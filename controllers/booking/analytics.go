package booking

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"salon-booking/logger"
	"salon-booking/middleware"
	bookingModel "salon-booking/models/booking"
	"salon-booking/types"
	"salon-booking/utils"
)

// Analytics summarizes the current month: bookings per status and the revenue
// of completed bookings. Routed behind the advanced-analytics feature gate.
func (bc *BookingController) Analytics(c *fiber.Ctx) error {
	t := middleware.CurrentTenant(c)
	if t == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Unauthorized",
			Data:    nil,
		})
	}

	start, end := utils.MonthWindow(time.Now().UTC())

	type statusCount struct {
		Status bookingModel.BookingStatus `json:"status"`
		Count  int64                      `json:"count"`
	}
	var byStatus []statusCount
	err := bc.DB.Model(&bookingModel.Booking{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ?", t.ID).
		Where("starts_at >= ? AND starts_at <= ?", start, end).
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		logger.Error("Failed to aggregate bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	var revenueCents int64
	err = bc.DB.Model(&bookingModel.Booking{}).
		Select("COALESCE(SUM(services.price_cents), 0)").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.tenant_id = ?", t.ID).
		Where("bookings.status = ?", bookingModel.BookingStatusCompleted).
		Where("bookings.starts_at >= ? AND bookings.starts_at <= ?", start, end).
		Scan(&revenueCents).Error
	if err != nil {
		logger.Error("Failed to compute revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Analytics retrieved successfully",
		Data: fiber.Map{
			"month_start":   start,
			"month_end":     end,
			"by_status":     byStatus,
			"revenue_cents": revenueCents,
		},
	})
}
