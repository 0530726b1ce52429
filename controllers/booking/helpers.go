package booking

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	bookingModel "salon-booking/models/booking"
	staffModel "salon-booking/models/staff"
)

// errSlotTaken is returned from the create/reschedule transaction when the
// availability check fails; it maps to 409 at the HTTP layer.
var errSlotTaken = errors.New("slot is no longer available")

// isExclusionViolation detects the bookings_no_overlap constraint firing
// under a concurrent insert the in-process availability check did not see.
func isExclusionViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "bookings_no_overlap")
}

// loadActiveStaff resolves a staff id to an active member of the given
// tenant. Ids belonging to another tenant or to a deactivated member come
// back as gorm.ErrRecordNotFound.
func loadActiveStaff(db *gorm.DB, tenantID, staffID string) (*staffModel.Staff, error) {
	var member staffModel.Staff
	err := db.Where("id = ? AND tenant_id = ? AND active = ?", staffID, tenantID, true).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// loadDayBookings fetches the tenant+staff bookings whose time range can
// possibly overlap the day containing at. The window is padded by a day on
// each side so bookings crossing midnight are included; the availability
// engine does the precise filtering.
func loadDayBookings(db *gorm.DB, tenantID, staffID string, at time.Time) ([]bookingModel.Booking, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 3)

	var existing []bookingModel.Booking
	err := db.Where("tenant_id = ? AND staff_id = ?", tenantID, staffID).
		Where("starts_at < ? AND ends_at > ?", dayEnd, dayStart).
		Where("status NOT IN ?", []bookingModel.BookingStatus{
			bookingModel.BookingStatusCancelled,
			bookingModel.BookingStatusNoShow,
		}).
		Find(&existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}
