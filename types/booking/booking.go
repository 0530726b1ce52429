package booking

import (
	"fmt"
	"time"
)

// BookingCreateRequest represents the request payload for creating a booking
// on a tenant's public booking page.
type BookingCreateRequest struct {
	StaffID       string    `json:"staff_id" validate:"required,uuid"`
	ServiceID     string    `json:"service_id" validate:"required,uuid"`
	CustomerName  string    `json:"customer_name" validate:"required,min=1,max=255"`
	CustomerPhone string    `json:"customer_phone" validate:"required,min=8,max=20"`
	StartsAt      time.Time `json:"starts_at" validate:"required"`
	Notes         string    `json:"notes" validate:"omitempty,max=2000"`
}

func (b BookingCreateRequest) Validate() error {
	if b.StaffID == "" {
		return fmt.Errorf("staff_id is required")
	}
	if b.ServiceID == "" {
		return fmt.Errorf("service_id is required")
	}
	if b.CustomerName == "" {
		return fmt.Errorf("customer_name is required")
	}
	if b.CustomerPhone == "" {
		return fmt.Errorf("customer_phone is required")
	}
	if b.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	return nil
}

// UpdateStatusRequest moves a booking to a new lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed no_show"`
}

func (r UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

// RescheduleRequest moves an existing booking to a new start time, keeping
// its duration.
type RescheduleRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	StaffID  string    `json:"staff_id" validate:"omitempty,uuid"`
}

func (r RescheduleRequest) Validate() error {
	if r.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	return nil
}

// SlotsQuery backs GET /public/:slug/slots.
type SlotsQuery struct {
	StaffID   string `query:"staff_id"`
	ServiceID string `query:"service_id"`
	Date      string `query:"date"` // YYYY-MM-DD, tenant-local
}

func (q SlotsQuery) Validate() error {
	if q.StaffID == "" {
		return fmt.Errorf("staff_id is required")
	}
	if q.ServiceID == "" {
		return fmt.Errorf("service_id is required")
	}
	if _, err := time.Parse("2006-01-02", q.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}
