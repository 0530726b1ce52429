package booking_event

import (
	bookingModel "salon-booking/models/booking"

	"gorm.io/gorm"
)

// RecordStatusEvent appends one row to the booking's status history. Runs
// inside the caller's transaction so a failed mutation never leaves a stray
// event behind.
func RecordStatusEvent(tx *gorm.DB, b *bookingModel.Booking, status bookingModel.BookingStatus, createdBy string) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID: b.ID,
		Status:    status,
		CreatedBy: createdBy,
	}
	return tx.Create(&ev).Error
}
