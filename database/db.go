package database

import (
	"fmt"
	"os"

	"salon-booking/logger"
	bookingModel "salon-booking/models/booking"
	logModel "salon-booking/models/log"
	serviceModel "salon-booking/models/service"
	staffModel "salon-booking/models/staff"
	subscriptionModel "salon-booking/models/subscription"
	tenantModel "salon-booking/models/tenant"
	userModel "salon-booking/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration, indexing
// and the booking exclusion constraint
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createBookingExclusionConstraint(); err != nil {
		logger.Error("Failed to create booking exclusion constraint", err)
		return nil, err
	}

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models, in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&tenantModel.Tenant{},
		&userModel.User{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&staffModel.Staff{},
		&serviceModel.Service{},
		&subscriptionModel.Subscription{},
		&subscriptionModel.SubscriptionEvent{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		&bookingModel.Booking{},
		&bookingModel.BookingStatusEvent{},
		// Logging
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createBookingExclusionConstraint makes "check availability, then insert"
// safe under concurrency: Postgres rejects a second occupying booking for the
// same tenant and staff member whose time range overlaps an existing one.
// The availability engine only advises; this constraint enforces.
func createBookingExclusionConstraint() error {
	if err := DB.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("failed to create btree_gist extension: %w", err)
	}

	var exists bool
	checkSQL := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE constraint_name = $1
		)
	`
	if err := DB.Raw(checkSQL, "bookings_no_overlap").Scan(&exists).Error; err != nil {
		return fmt.Errorf("failed to check constraint existence: %w", err)
	}
	if exists {
		logger.Debug("Constraint already exists: bookings_no_overlap")
		return nil
	}

	constraintSQL := `
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
		EXCLUDE USING gist (
			tenant_id WITH =,
			staff_id WITH =,
			tstzrange(starts_at, ends_at) WITH &&
		)
		WHERE (status NOT IN ('cancelled', 'no_show') AND deleted_at IS NULL)
	`
	if err := DB.Exec(constraintSQL).Error; err != nil {
		return fmt.Errorf("failed to create constraint bookings_no_overlap: %w", err)
	}
	logger.Success("Successfully created constraint: bookings_no_overlap")
	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Tenant indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_tenants_slug ON tenants(slug)").Error; err != nil {
		return fmt.Errorf("failed to create tenant slug index: %w", err)
	}

	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	// Booking indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_tenant_staff_starts_at ON bookings(tenant_id, staff_id, starts_at)").Error; err != nil {
		return fmt.Errorf("failed to create booking tenant_staff_starts_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)").Error; err != nil {
		return fmt.Errorf("failed to create booking status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_customer_phone ON bookings(customer_phone)").Error; err != nil {
		return fmt.Errorf("failed to create booking customer_phone index: %w", err)
	}

	// Subscription indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_subscriptions_preapproval_id ON subscriptions(preapproval_id)").Error; err != nil {
		return fmt.Errorf("failed to create subscription preapproval_id index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
