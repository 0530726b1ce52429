package billing

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/httpServices/mercadopago"
	"salon-booking/logger"
	"salon-booking/middleware"
	subscriptionModel "salon-booking/models/subscription"
	tenantModel "salon-booking/models/tenant"
	"salon-booking/services/plans"
	"salon-booking/services/usage"
	"salon-booking/types"
	billingTypes "salon-booking/types/billing"
	"salon-booking/utils"
)

// planPrices is the monthly preapproval amount per paid plan.
var planPrices = map[plans.Plan]float64{
	plans.PlanPro:        49.90,
	plans.PlanEnterprise: 199.90,
}

// BillingController handles the plan overview, subscription checkout and the
// Mercado Pago webhook.
type BillingController struct {
	DB          *gorm.DB
	Logger      *logger.AsyncLogger
	MercadoPago *mercadopago.Client
}

// NewBillingController creates a new billing controller
func NewBillingController(db *gorm.DB, asyncLogger *logger.AsyncLogger, mp *mercadopago.Client) *BillingController {
	return &BillingController{
		DB:          db,
		Logger:      asyncLogger,
		MercadoPago: mp,
	}
}

// logAPIRequest pushes a sanitized copy of the request and response to the
// async logger.
func (bc *BillingController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	bc.Logger.Log(logEntry)
}

// sendResponseWithLog sends the response and records it in one call.
func (bc *BillingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	bc.logAPIRequest(c)
	return result
}

// PlanOverview returns the tenant's plan, effective entitlements, current
// usage and the upgrade prompts for everything its plan does not include.
func (bc *BillingController) PlanOverview(c *fiber.Ctx) error {
	tenantID := middleware.TenantID(c)

	var t tenantModel.Tenant
	if err := bc.DB.First(&t, "id = ?", tenantID).Error; err != nil {
		logger.Error("Failed to find tenant", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	bookings, err := usage.BookingsThisMonth(bc.DB, t.ID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to count bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
	staff, err := usage.ActiveStaffCount(bc.DB, t.ID)
	if err != nil {
		logger.Error("Failed to count staff", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	messages := make(map[string]string)
	for _, f := range []plans.Feature{
		plans.FeatureWhatsappNotifications,
		plans.FeaturePaymentProcessing,
		plans.FeatureAdvancedAnalytics,
		plans.FeatureCustomBranding,
		plans.FeatureMultipleStaff,
		plans.FeatureAPIAccess,
		plans.FeaturePrioritySupport,
	} {
		if !plans.HasFeatureAccess(t.Plan, t.SubscriptionStatus, f) {
			messages[string(f)] = plans.UpgradeMessage(f)
		}
	}
	if !plans.CanPerformAction(t.Plan, t.SubscriptionStatus, plans.ActionCreateBooking, bookings) {
		messages[string(plans.FeatureMaxBookingsPerMonth)] = plans.UpgradeMessage(plans.FeatureMaxBookingsPerMonth)
	}
	if !plans.CanPerformAction(t.Plan, t.SubscriptionStatus, plans.ActionAddStaffMember, staff) {
		messages[string(plans.FeatureMaxStaffMembers)] = plans.UpgradeMessage(plans.FeatureMaxStaffMembers)
	}

	overview := billingTypes.PlanOverview{
		Plan:               t.Plan.String(),
		EffectivePlan:      plans.EffectivePlan(t.Plan, t.SubscriptionStatus).String(),
		SubscriptionStatus: t.SubscriptionStatus.String(),
		Features:           plans.GetPlanFeatures(t.Plan, t.SubscriptionStatus),
		BookingsThisMonth:  bookings,
		ActiveStaff:        staff,
		UpgradeMessages:    messages,
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Plan overview retrieved successfully",
		Data:    overview,
	})
}

// Subscribe starts a Mercado Pago preapproval for a paid plan and returns the
// checkout URL. The plan only takes effect once the webhook reports the
// preapproval authorized.
func (bc *BillingController) Subscribe(c *fiber.Ctx) error {
	if bc.MercadoPago == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Billing is not configured",
			Data:    nil,
		})
	}

	var req billingTypes.SubscribeRequest
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

	plan := plans.Plan(req.Plan)
	price, ok := planPrices[plan]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Plan must be pro or enterprise",
			Data:    nil,
		})
	}

	tenantID := middleware.TenantID(c)

	var t tenantModel.Tenant
	if err := bc.DB.First(&t, "id = ?", tenantID).Error; err != nil {
		logger.Error("Failed to find tenant", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	currency := os.Getenv("MP_CURRENCY_ID")
	if currency == "" {
		currency = "ARS"
	}

	preapproval, err := bc.MercadoPago.CreatePreapproval(mercadopago.PreapprovalRequest{
		Reason:            fmt.Sprintf("%s subscription for %s", plan, t.Name),
		ExternalReference: t.ID,
		PayerEmail:        req.PayerEmail,
		BackURL:           os.Getenv("FRONTEND_URL"),
		AutoRecurring: &mercadopago.AutoRecurring{
			Frequency:         1,
			FrequencyType:     "months",
			TransactionAmount: price,
			CurrencyID:        currency,
		},
	})
	if err != nil {
		logger.Error("Failed to create preapproval", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to start subscription",
			Data:    nil,
		})
	}

	sub := subscriptionModel.Subscription{
		TenantID:      t.ID,
		Plan:          plan,
		Status:        plans.StatusInactive,
		PreapprovalID: &preapproval.ID,
		PayerEmail:    &req.PayerEmail,
	}
	if err := bc.DB.Create(&sub).Error; err != nil {
		logger.Error("Failed to persist subscription", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to start subscription",
			Data:    nil,
		})
	}

	logger.Success(fmt.Sprintf("Preapproval %s created for tenant %s", preapproval.ID, t.ID))

	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Subscription created, complete the checkout",
		Data: fiber.Map{
			"preapproval_id": preapproval.ID,
			"init_point":     preapproval.InitPoint,
		},
	})
}

// Webhook receives Mercado Pago notifications. The payload only carries a
// resource id; the handler fetches the resource and reconciles the tenant's
// plan and subscription status from it. Events already processed are
// acknowledged without acting twice.
func (bc *BillingController) Webhook(c *fiber.Ctx) error {
	if bc.MercadoPago == nil {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	var note billingTypes.WebhookNotification
	if err := c.BodyParser(&note); err != nil {
		logger.Error("Failed to parse webhook payload", err)
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if note.Data.ID == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	externalID := fmt.Sprintf("%s:%s", note.Type, note.Data.ID)

	var seen int64
	if err := bc.DB.Model(&subscriptionModel.SubscriptionEvent{}).
		Where("external_id = ?", externalID).Count(&seen).Error; err == nil && seen > 0 {
		return c.SendStatus(fiber.StatusOK)
	}

	var err error
	switch note.Type {
	case "payment":
		err = bc.handlePayment(note, externalID, string(c.Body()))
	case "subscription_preapproval":
		err = bc.handlePreapproval(note, externalID, string(c.Body()))
	default:
		// Unknown topics are acknowledged so Mercado Pago stops retrying.
		return c.SendStatus(fiber.StatusOK)
	}
	if err != nil {
		logger.Error("Failed to process webhook", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	result := c.SendStatus(fiber.StatusOK)
	bc.logAPIRequest(c)
	return result
}

func (bc *BillingController) handlePayment(note billingTypes.WebhookNotification, externalID, rawPayload string) error {
	payment, err := bc.MercadoPago.GetPayment(note.Data.ID)
	if err != nil {
		return err
	}
	if payment.ExternalReference == "" {
		return errors.New("payment has no external reference")
	}

	return bc.DB.Transaction(func(tx *gorm.DB) error {
		sub, t, err := loadBillingPair(tx, payment.ExternalReference)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		switch payment.Status {
		case "approved":
			paymentID := fmt.Sprintf("%d", payment.ID)
			sub.Status = plans.StatusActive
			sub.LastPaymentID = &paymentID
			sub.LastPaidAt = &now
			t.Plan = sub.Plan
			t.SubscriptionStatus = plans.StatusActive
		case "rejected":
			sub.Status = plans.StatusPastDue
			t.SubscriptionStatus = plans.StatusPastDue
		case "pending", "in_process":
			// Checkout still in flight, nothing to change yet.
		default:
			logger.Warning(fmt.Sprintf("Unhandled payment status %q for tenant %s", payment.Status, t.ID))
		}

		return persistBillingEvent(tx, sub, t, externalID, note.Action, rawPayload)
	})
}

func (bc *BillingController) handlePreapproval(note billingTypes.WebhookNotification, externalID, rawPayload string) error {
	preapproval, err := bc.MercadoPago.GetPreapproval(note.Data.ID)
	if err != nil {
		return err
	}
	if preapproval.ExternalReference == "" {
		return errors.New("preapproval has no external reference")
	}

	return bc.DB.Transaction(func(tx *gorm.DB) error {
		sub, t, err := loadBillingPair(tx, preapproval.ExternalReference)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		switch preapproval.Status {
		case "authorized":
			sub.Status = plans.StatusActive
			t.Plan = sub.Plan
			t.SubscriptionStatus = plans.StatusActive
		case "paused":
			sub.Status = plans.StatusPastDue
			t.SubscriptionStatus = plans.StatusPastDue
		case "cancelled":
			sub.Status = plans.StatusCancelled
			sub.CancelledAt = &now
			t.SubscriptionStatus = plans.StatusCancelled
		case "pending":
			// Payer has not finished checkout.
		default:
			logger.Warning(fmt.Sprintf("Unhandled preapproval status %q for tenant %s", preapproval.Status, t.ID))
		}

		return persistBillingEvent(tx, sub, t, externalID, note.Action, rawPayload)
	})
}

// loadBillingPair fetches the most recent subscription for the tenant named
// by the external reference, along with the tenant row itself.
func loadBillingPair(tx *gorm.DB, tenantID string) (*subscriptionModel.Subscription, *tenantModel.Tenant, error) {
	var sub subscriptionModel.Subscription
	if err := tx.Where("tenant_id = ?", tenantID).Order("created_at DESC").First(&sub).Error; err != nil {
		return nil, nil, fmt.Errorf("subscription for tenant %s: %w", tenantID, err)
	}

	var t tenantModel.Tenant
	if err := tx.First(&t, "id = ?", tenantID).Error; err != nil {
		return nil, nil, fmt.Errorf("tenant %s: %w", tenantID, err)
	}
	return &sub, &t, nil
}

func persistBillingEvent(tx *gorm.DB, sub *subscriptionModel.Subscription, t *tenantModel.Tenant, externalID, eventType, rawPayload string) error {
	if err := tx.Save(sub).Error; err != nil {
		return err
	}
	if err := tx.Save(t).Error; err != nil {
		return err
	}
	return tx.Create(&subscriptionModel.SubscriptionEvent{
		SubscriptionID: sub.ID,
		ExternalID:     externalID,
		EventType:      eventType,
		RawPayload:     rawPayload,
	}).Error
}
