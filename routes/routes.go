package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"salon-booking/controllers/auth"
	"salon-booking/controllers/billing"
	"salon-booking/controllers/booking"
	"salon-booking/controllers/tenant"
	"salon-booking/httpServices/mercadopago"
	"salon-booking/httpServices/whatsapp"
	"salon-booking/logger"
	"salon-booking/middleware"
	"salon-booking/services/plans"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)

	var waClient *whatsapp.Client
	if os.Getenv("WHATSAPP_TOKEN") != "" {
		waClient = whatsapp.NewClient(
			os.Getenv("WHATSAPP_API_URL"),
			os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			os.Getenv("WHATSAPP_TOKEN"),
		)
	}

	var mpClient *mercadopago.Client
	if os.Getenv("MP_ACCESS_TOKEN") != "" {
		mpClient = mercadopago.NewClient(
			os.Getenv("MP_API_URL"),
			os.Getenv("MP_ACCESS_TOKEN"),
		)
	}

	authController := auth.NewAuthController(db, asyncLogger)
	bookingController := booking.NewBookingController(db, asyncLogger, waClient)
	tenantController := tenant.NewTenantController(db, asyncLogger)
	billingController := billing.NewBillingController(db, asyncLogger, mpClient)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)

	// Billing provider callbacks are unauthenticated; the handler verifies the
	// resource against the provider's API before acting.
	api.Post("/billing/webhook", billingController.Webhook)

	// Customer-facing booking pages, keyed by tenant slug.
	public := api.Group("/public/:slug")
	public.Get("/services", bookingController.PublicServices)
	public.Get("/staff", bookingController.PublicStaff)
	public.Get("/slots", bookingController.Slots)
	public.Post("/bookings", bookingController.Store)

	/*=============================================================================
	| Admin Routes (dashboard, JWT required)
	===============================================================================*/
	admin := api.Group("/admin").Use(middleware.IsAuthenticated())

	admin.Get("/tenant", tenantController.Show)
	admin.Put("/tenant/settings", middleware.RequireOwner(), tenantController.UpdateSettings)

	admin.Get("/staff", tenantController.ListStaff)
	admin.Post("/staff", middleware.RequireOwner(), tenantController.CreateStaff)
	admin.Put("/staff/:id", middleware.RequireOwner(), tenantController.UpdateStaff)

	admin.Get("/services", tenantController.ListServices)
	admin.Post("/services", middleware.RequireOwner(), tenantController.CreateService)
	admin.Put("/services/:id", middleware.RequireOwner(), tenantController.UpdateService)

	admin.Get("/bookings", bookingController.Index)
	admin.Get("/bookings/:id", bookingController.Show)
	admin.Put("/bookings/:id/status", bookingController.UpdateStatus)
	admin.Put("/bookings/:id/reschedule", bookingController.Reschedule)

	admin.Get("/analytics",
		middleware.RequireFeature(db, plans.FeatureAdvancedAnalytics),
		bookingController.Analytics)

	admin.Get("/plan", billingController.PlanOverview)
	admin.Post("/billing/subscribe", middleware.RequireOwner(), billingController.Subscribe)
}
