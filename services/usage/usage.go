// Package usage computes the current-usage numbers fed into the plan
// engine's quota checks.
package usage

import (
	"time"

	"gorm.io/gorm"

	bookingModel "salon-booking/models/booking"
	staffModel "salon-booking/models/staff"
	"salon-booking/utils"
)

// BookingsThisMonth counts a tenant's occupying bookings whose start falls in
// the month containing at. Cancelled and no-show bookings give their quota
// slot back.
func BookingsThisMonth(db *gorm.DB, tenantID string, at time.Time) (int, error) {
	start, end := utils.MonthWindow(at)

	var count int64
	err := db.Model(&bookingModel.Booking{}).
		Where("tenant_id = ?", tenantID).
		Where("starts_at >= ? AND starts_at <= ?", start, end).
		Where("status NOT IN ?", []bookingModel.BookingStatus{
			bookingModel.BookingStatusCancelled,
			bookingModel.BookingStatusNoShow,
		}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// ActiveStaffCount counts a tenant's active staff members.
func ActiveStaffCount(db *gorm.DB, tenantID string) (int, error) {
	var count int64
	err := db.Model(&staffModel.Staff{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
