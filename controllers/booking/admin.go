package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/logger"
	"salon-booking/middleware"
	bookingModel "salon-booking/models/booking"
	"salon-booking/services/availability"
	"salon-booking/services/booking_event"
	"salon-booking/types"
	bookingTypes "salon-booking/types/booking"
)

// Index lists the tenant's bookings, optionally filtered by staff, status
// and date range.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	query := bc.DB.Where("tenant_id = ?", tenantID)

	if staffID := c.Query("staff_id"); staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if status := c.Query("status"); status != "" {
		if !bookingModel.BookingStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid status filter",
				Data:    nil,
			})
		}
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("starts_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("starts_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var bookings []bookingModel.Booking
	if err := query.Order("starts_at").Find(&bookings).Error; err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings retrieved successfully",
		Data:    bookings,
	})
}

// Show returns one booking with its status history.
func (bc *BookingController) Show(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	var booking bookingModel.Booking
	if err := bc.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), tenantID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	var events []bookingModel.BookingStatusEvent
	if err := bc.DB.Where("booking_id = ?", booking.ID).Order("created_at").Find(&events).Error; err != nil {
		logger.Error("Failed to load booking events", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking retrieved successfully",
		Data: fiber.Map{
			"booking": booking,
			"events":  events,
		},
	})
}

// UpdateStatus moves a booking through its lifecycle (confirm, cancel,
// complete, no-show), recording a status event on every transition.
func (bc *BookingController) UpdateStatus(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	var req bookingTypes.UpdateStatusRequest
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

	target := bookingModel.BookingStatus(req.Status)
	if !target.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid status",
			Data:    nil,
		})
	}

	var booking bookingModel.Booking
	if err := bc.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), tenantID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if !booking.Status.CanTransitionTo(target) {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: fmt.Sprintf("Cannot change status from %s to %s", booking.Status, target),
			Data:    nil,
		})
	}

	updatedBy := middleware.UserID(c)
	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		booking.Status = target
		booking.UpdatedBy = updatedBy
		if err := tx.Save(&booking).Error; err != nil {
			logger.Error("Failed to update booking status", err)
			return err
		}
		return booking_event.RecordStatusEvent(tx, &booking, target, updatedBy)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update booking",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Booking %s moved to %s", booking.ID, target))

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking status updated successfully",
		Data:    booking,
	})
}

// Reschedule moves a booking to a new start time (optionally a different
// staff member), re-checking availability with the booking excluded so it
// does not conflict with itself.
func (bc *BookingController) Reschedule(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	var req bookingTypes.RescheduleRequest
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

	var booking bookingModel.Booking
	if err := bc.DB.Where("id = ? AND tenant_id = ?", c.Params("id"), tenantID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Booking not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to find booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	if booking.Status.IsTerminal() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Booking can no longer be rescheduled",
			Data:    nil,
		})
	}

	staffID := booking.StaffID
	if req.StaffID != "" && req.StaffID != booking.StaffID {
		// The target staff member must be an active member of this tenant;
		// a foreign or retired staff id must not be attached to the booking.
		member, err := loadActiveStaff(bc.DB, tenantID, req.StaffID)
		if err != nil {
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
		staffID = member.ID
	}

	duration := booking.EndsAt.Sub(booking.StartsAt)
	startsAt := req.StartsAt.UTC()
	endsAt := startsAt.Add(duration)

	updatedBy := middleware.UserID(c)
	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := loadDayBookings(tx, tenantID, staffID, startsAt)
		if err != nil {
			logger.Error("Failed to load existing bookings", err)
			return err
		}

		if !availability.CheckAvailability(tenantID, staffID, startsAt, endsAt, existing, booking.ID) {
			return errSlotTaken
		}

		booking.StaffID = staffID
		booking.StartsAt = startsAt
		booking.EndsAt = endsAt
		booking.UpdatedBy = updatedBy
		if err := tx.Save(&booking).Error; err != nil {
			logger.Error("Failed to reschedule booking", err)
			return err
		}
		return booking_event.RecordStatusEvent(tx, &booking, booking.Status, updatedBy)
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) || isExclusionViolation(err) {
			return bc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "This slot is no longer available",
				Data:    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to reschedule booking",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Booking %s rescheduled to %s", booking.ID, startsAt.Format(time.RFC3339)))

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking rescheduled successfully",
		Data:    booking,
	})
}
