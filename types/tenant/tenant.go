package tenant

import (
	"fmt"

	tenantModel "salon-booking/models/tenant"
)

// UpdateSettingsRequest updates the tenant's structured settings. Branding
// fields and the integration toggles are plan-gated in the controller.
type UpdateSettingsRequest struct {
	Name     *string               `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Settings *tenantModel.Settings `json:"settings,omitempty"`
}

func (r UpdateSettingsRequest) Validate() error {
	if r.Name == nil && r.Settings == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.Settings != nil {
		for day, hours := range r.Settings.BusinessHours {
			switch day {
			case tenantModel.Monday, tenantModel.Tuesday, tenantModel.Wednesday,
				tenantModel.Thursday, tenantModel.Friday, tenantModel.Saturday, tenantModel.Sunday:
			default:
				return fmt.Errorf("unknown weekday %q in business_hours", day)
			}
			if hours != nil && (hours.Open == "" || hours.Close == "") {
				return fmt.Errorf("business_hours for %s must have open and close", day)
			}
		}
	}
	return nil
}

// StaffCreateRequest adds a staff member (quota-gated).
type StaffCreateRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Phone string `json:"phone" validate:"omitempty,min=8,max=20"`
}

func (r StaffCreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// StaffUpdateRequest renames or (de)activates a staff member.
type StaffUpdateRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Active *bool   `json:"active,omitempty"`
}

// ServiceCreateRequest adds a bookable service.
type ServiceCreateRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=255"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5,max=600"`
	PriceCents      int64  `json:"price_cents" validate:"omitempty,min=0"`
}

func (r ServiceCreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return nil
}

// ServiceUpdateRequest edits a bookable service.
type ServiceUpdateRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=600"`
	PriceCents      *int64  `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	Active          *bool   `json:"active,omitempty"`
}
