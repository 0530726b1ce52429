package seeders

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	serviceModel "salon-booking/models/service"
	staffModel "salon-booking/models/staff"
	tenantModel "salon-booking/models/tenant"
	userModel "salon-booking/models/user"
	"salon-booking/services/plans"
)

// SeedDemoTenant creates a demo barbershop with one staff member and a few
// services for local development. Idempotent: skipped when the slug exists.
func SeedDemoTenant(db *gorm.DB) {
	log.Printf("🔍 Checking demo tenant...")

	var existing tenantModel.Tenant
	if err := db.Where("slug = ?", "demo-barbershop").First(&existing).Error; err == nil {
		log.Printf("Demo tenant already present, skipping seed")
		return
	}

	t := tenantModel.Tenant{
		Slug:               "demo-barbershop",
		Name:               "Demo Barbershop",
		Phone:              "+5511999990000",
		Plan:               plans.PlanFree,
		SubscriptionStatus: plans.StatusInactive,
		Settings: tenantModel.Settings{
			BusinessHours: map[string]*tenantModel.DayHours{
				tenantModel.Monday:    {Open: "09:00", Close: "18:00"},
				tenantModel.Tuesday:   {Open: "09:00", Close: "18:00"},
				tenantModel.Wednesday: {Open: "09:00", Close: "18:00"},
				tenantModel.Thursday:  {Open: "09:00", Close: "18:00"},
				tenantModel.Friday:    {Open: "09:00", Close: "20:00"},
				tenantModel.Saturday:  {Open: "10:00", Close: "16:00"},
				tenantModel.Sunday:    nil,
			},
		},
	}
	if err := db.Create(&t).Error; err != nil {
		log.Printf("Failed to seed demo tenant: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash demo password: %v", err)
		return
	}
	owner := userModel.User{
		TenantID:     t.ID,
		Name:         "Demo Owner",
		Email:        "owner@demo-barbershop.test",
		PasswordHash: string(hash),
		Role:         userModel.RoleOwner,
	}
	if err := db.Create(&owner).Error; err != nil {
		log.Printf("Failed to seed demo owner: %v", err)
		return
	}

	barber := staffModel.Staff{TenantID: t.ID, Name: "Demo Barber", Active: true}
	if err := db.Create(&barber).Error; err != nil {
		log.Printf("Failed to seed demo staff: %v", err)
		return
	}

	services := []serviceModel.Service{
		{TenantID: t.ID, Name: "Haircut", DurationMinutes: 30, PriceCents: 5000, Active: true},
		{TenantID: t.ID, Name: "Beard Trim", DurationMinutes: 15, PriceCents: 2500, Active: true},
		{TenantID: t.ID, Name: "Cut + Beard", DurationMinutes: 45, PriceCents: 7000, Active: true},
	}
	for _, s := range services {
		svc := s
		if err := db.Create(&svc).Error; err != nil {
			log.Printf("Failed to seed demo service %s: %v", svc.Name, err)
		}
	}

	log.Printf("✅ Demo tenant seeded (slug: demo-barbershop)")
}
