package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/httpServices/whatsapp"
	"salon-booking/logger"
	bookingModel "salon-booking/models/booking"
	serviceModel "salon-booking/models/service"
	staffModel "salon-booking/models/staff"
	tenantModel "salon-booking/models/tenant"
	"salon-booking/services/availability"
	"salon-booking/services/booking_event"
	"salon-booking/services/plans"
	"salon-booking/services/usage"
	"salon-booking/types"
	bookingTypes "salon-booking/types/booking"
	"salon-booking/utils"
)

// slotStepMinutes is the granularity of the public slot grid.
const slotStepMinutes = 15

// BookingController handles booking-related HTTP requests
type BookingController struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	Whatsapp *whatsapp.Client // nil when WhatsApp is not configured
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger, wa *whatsapp.Client) *BookingController {
	return &BookingController{
		DB:       db,
		Logger:   asyncLogger,
		Whatsapp: wa,
	}
}

// logAPIRequest pushes a sanitized copy of the request and response to the
// async logger.
func (bc *BookingController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	bc.Logger.Log(logEntry)
}

// sendResponseWithLog sends the response and records it in one call.
func (bc *BookingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	bc.logAPIRequest(c)
	return result
}

// tenantBySlug loads the tenant behind a public booking page.
func (bc *BookingController) tenantBySlug(c *fiber.Ctx) (*tenantModel.Tenant, error) {
	slug := c.Params("slug")
	var t tenantModel.Tenant
	if err := bc.DB.Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Store creates a new booking from the public booking page.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	tenant, err := bc.tenantBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Business not found",
			Data:    nil,
		})
	}

	var req bookingTypes.BookingCreateRequest
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
	if !utils.ValidatePhoneNumber(req.CustomerPhone) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid phone number",
			Data:    nil,
		})
	}

	var svc serviceModel.Service
	if err := bc.DB.Where("id = ? AND tenant_id = ? AND active = ?", req.ServiceID, tenant.ID, true).First(&svc).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Service not found",
			Data:    nil,
		})
	}

	member, err := loadActiveStaff(bc.DB, tenant.ID, req.StaffID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Staff member not found",
			Data:    nil,
		})
	}

	startsAt := req.StartsAt.UTC()
	endsAt := startsAt.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// Monthly quota check against the effective plan.
	used, err := usage.BookingsThisMonth(bc.DB, tenant.ID, startsAt)
	if err != nil {
		logger.Error("Failed to count monthly bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	if !plans.CanPerformAction(tenant.Plan, tenant.SubscriptionStatus, plans.ActionCreateBooking, used) {
		return bc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: plans.UpgradeMessage(plans.FeatureMaxBookingsPerMonth),
			Data:    nil,
		})
	}

	var booking bookingModel.Booking

	// Check availability and insert inside one transaction. The database
	// exclusion constraint catches the race two concurrent requests can
	// still win against this check.
	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := loadDayBookings(tx, tenant.ID, member.ID, startsAt)
		if err != nil {
			logger.Error("Failed to load existing bookings", err)
			return err
		}

		if !availability.CheckAvailability(tenant.ID, member.ID, startsAt, endsAt, existing, "") {
			return errSlotTaken
		}

		booking = bookingModel.Booking{
			TenantID:      tenant.ID,
			StaffID:       member.ID,
			ServiceID:     svc.ID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			StartsAt:      startsAt,
			EndsAt:        endsAt,
			Status:        bookingModel.BookingStatusPending,
			CreatedBy:     "public:" + req.CustomerPhone,
		}
		if req.Notes != "" {
			booking.Notes = &req.Notes
		}

		if err := tx.Create(&booking).Error; err != nil {
			logger.Error("Failed to create booking", err)
			return err
		}

		return booking_event.RecordStatusEvent(tx, &booking, booking.Status, booking.CreatedBy)
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
			Message: "Failed to save booking",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Booking created successfully with ID: %s", booking.ID))

	bc.notifyBookingCreated(tenant, &svc, &booking)

	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    booking,
	})
}

// Slots returns the free start times for a staff member on a date.
func (bc *BookingController) Slots(c *fiber.Ctx) error {
	tenant, err := bc.tenantBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Business not found",
			Data:    nil,
		})
	}

	var q bookingTypes.SlotsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid query parameters",
			Data:    nil,
		})
	}
	if err := q.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	var svc serviceModel.Service
	if err := bc.DB.Where("id = ? AND tenant_id = ? AND active = ?", q.ServiceID, tenant.ID, true).First(&svc).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Service not found",
			Data:    nil,
		})
	}

	date, _ := time.Parse("2006-01-02", q.Date)
	hours := tenant.Settings.HoursFor(utils.WeekdayKey(date.Weekday()))
	if hours == nil {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Business is closed on this day",
			Data:    []time.Time{},
		})
	}

	open, err := utils.CombineDateAndClock(date, hours.Open, time.UTC)
	if err != nil {
		logger.Error("Invalid opening time in tenant settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Invalid business hours configuration",
			Data:    nil,
		})
	}
	close, err := utils.CombineDateAndClock(date, hours.Close, time.UTC)
	if err != nil {
		logger.Error("Invalid closing time in tenant settings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Invalid business hours configuration",
			Data:    nil,
		})
	}

	existing, err := loadDayBookings(bc.DB, tenant.ID, q.StaffID, open)
	if err != nil {
		logger.Error("Failed to load existing bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	slots := availability.FreeSlots(tenant.ID, q.StaffID, open, close, duration, slotStepMinutes, existing)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Available slots retrieved successfully",
		Data:    slots,
	})
}

// PublicServices lists the active services of a tenant's booking page.
func (bc *BookingController) PublicServices(c *fiber.Ctx) error {
	tenant, err := bc.tenantBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Business not found",
			Data:    nil,
		})
	}

	var services []serviceModel.Service
	if err := bc.DB.Where("tenant_id = ? AND active = ?", tenant.ID, true).Order("name").Find(&services).Error; err != nil {
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

// PublicStaff lists the active staff of a tenant's booking page.
func (bc *BookingController) PublicStaff(c *fiber.Ctx) error {
	tenant, err := bc.tenantBySlug(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Business not found",
			Data:    nil,
		})
	}

	var members []staffModel.Staff
	if err := bc.DB.Where("tenant_id = ? AND active = ?", tenant.ID, true).Order("name").Find(&members).Error; err != nil {
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

// notifyBookingCreated sends the WhatsApp confirmation when the tenant has
// the feature and switched it on. Failures are logged, never surfaced to the
// customer.
func (bc *BookingController) notifyBookingCreated(tenant *tenantModel.Tenant, svc *serviceModel.Service, b *bookingModel.Booking) {
	if bc.Whatsapp == nil || !tenant.Settings.WhatsappEnabled {
		return
	}
	if !plans.HasFeatureAccess(tenant.Plan, tenant.SubscriptionStatus, plans.FeatureWhatsappNotifications) {
		return
	}

	go func() {
		if _, err := bc.Whatsapp.SendBookingConfirmation(b.CustomerPhone, tenant.Name, svc.Name, b.StartsAt); err != nil {
			logger.Error("Failed to send WhatsApp confirmation", err)
		}
	}()
}
