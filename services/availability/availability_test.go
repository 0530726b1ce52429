package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "salon-booking/models/booking"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func mkBooking(id, tenantID, staffID string, start, end time.Time, status bookingModel.BookingStatus) bookingModel.Booking {
	return bookingModel.Booking{
		ID:       id,
		TenantID: tenantID,
		StaffID:  staffID,
		StartsAt: start,
		EndsAt:   end,
		Status:   status,
	}
}

func TestCheckAvailabilityDetectsOverlap(t *testing.T) {
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(14, 30), at(14, 45), bookingModel.BookingStatusConfirmed),
	}

	assert.False(t, CheckAvailability("t1", "s1", at(14, 0), at(15, 0), existing, ""))

	existing[0].Status = bookingModel.BookingStatusCancelled
	assert.True(t, CheckAvailability("t1", "s1", at(14, 0), at(15, 0), existing, ""))
}

func TestCheckAvailabilityFailsClosedOnBadInput(t *testing.T) {
	assert.False(t, CheckAvailability("", "s1", at(9, 0), at(10, 0), nil, ""))
	assert.False(t, CheckAvailability("t1", "", at(9, 0), at(10, 0), nil, ""))
	assert.False(t, CheckAvailability("t1", "s1", at(10, 0), at(9, 0), nil, ""))
	// Zero-length interval is never available either.
	assert.False(t, CheckAvailability("t1", "s1", at(9, 0), at(9, 0), nil, ""))
}

func TestCheckAvailabilityEmptySetIsAvailable(t *testing.T) {
	assert.True(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), nil, ""))
	assert.True(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), []bookingModel.Booking{}, ""))
}

func TestTenantIsolation(t *testing.T) {
	// Same staff ID under a different tenant must never block the slot.
	other := []bookingModel.Booking{
		mkBooking("b1", "t2", "s1", at(9, 0), at(10, 0), bookingModel.BookingStatusConfirmed),
	}
	assert.True(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), other, ""))
}

func TestStaffIsolation(t *testing.T) {
	other := []bookingModel.Booking{
		mkBooking("b1", "t1", "s2", at(9, 0), at(10, 0), bookingModel.BookingStatusConfirmed),
	}
	assert.True(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), other, ""))
}

func TestStatusTransparency(t *testing.T) {
	// Any number of cancelled/no-show bookings on the identical slot stay transparent.
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(9, 0), at(10, 0), bookingModel.BookingStatusCancelled),
		mkBooking("b2", "t1", "s1", at(9, 0), at(10, 0), bookingModel.BookingStatusNoShow),
		mkBooking("b3", "t1", "s1", at(9, 0), at(10, 0), bookingModel.BookingStatusCancelled),
	}
	assert.True(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), existing, ""))

	for _, status := range []bookingModel.BookingStatus{
		bookingModel.BookingStatusPending,
		bookingModel.BookingStatusConfirmed,
		bookingModel.BookingStatusCompleted,
	} {
		occupied := append(existing, mkBooking("b4", "t1", "s1", at(9, 0), at(10, 0), status))
		assert.False(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), occupied, ""), "status %s should occupy", status)
	}
}

func TestBoundaryNonOverlap(t *testing.T) {
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(10, 0), at(11, 0), bookingModel.BookingStatusConfirmed),
	}

	// Touching endpoints do not conflict.
	assert.True(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 0), existing, ""))
	assert.True(t, CheckAvailability("t1", "s1", at(11, 0), at(12, 0), existing, ""))

	// One minute past the boundary does.
	assert.False(t, CheckAvailability("t1", "s1", at(9, 0), at(10, 1), existing, ""))
	assert.False(t, CheckAvailability("t1", "s1", at(10, 59), at(12, 0), existing, ""))
}

func TestOverlapSymmetry(t *testing.T) {
	intervals := [][2]time.Time{
		{at(9, 0), at(10, 0)},
		{at(9, 30), at(10, 30)},
		{at(10, 0), at(11, 0)},
		{at(8, 0), at(12, 0)},
		{at(10, 30), at(10, 45)},
	}

	for i, a := range intervals {
		for j, b := range intervals {
			assert.Equal(t,
				Overlaps(a[0], a[1], b[0], b[1]),
				Overlaps(b[0], b[1], a[0], a[1]),
				"symmetry violated for intervals %d and %d", i, j)
		}
	}
}

func TestContainedAndContainingIntervalsConflict(t *testing.T) {
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(10, 0), at(11, 0), bookingModel.BookingStatusPending),
	}

	// Candidate fully inside the existing booking.
	assert.False(t, CheckAvailability("t1", "s1", at(10, 15), at(10, 45), existing, ""))
	// Candidate fully containing the existing booking.
	assert.False(t, CheckAvailability("t1", "s1", at(9, 0), at(12, 0), existing, ""))
}

func TestExcludeBookingIDSkipsSelf(t *testing.T) {
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(10, 0), at(11, 0), bookingModel.BookingStatusConfirmed),
		mkBooking("b2", "t1", "s1", at(11, 0), at(12, 0), bookingModel.BookingStatusConfirmed),
	}

	// Rescheduling b1 within its own slot must not conflict with itself...
	assert.True(t, CheckAvailability("t1", "s1", at(10, 15), at(10, 45), existing, "b1"))
	// ...but still conflicts with the neighbouring booking.
	assert.False(t, CheckAvailability("t1", "s1", at(10, 30), at(11, 30), existing, "b1"))
}

func TestCheckAvailabilityIsDeterministic(t *testing.T) {
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(10, 0), at(11, 0), bookingModel.BookingStatusConfirmed),
		mkBooking("b2", "t1", "s2", at(10, 0), at(11, 0), bookingModel.BookingStatusPending),
	}

	first := CheckAvailability("t1", "s1", at(10, 30), at(11, 30), existing, "")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, CheckAvailability("t1", "s1", at(10, 30), at(11, 30), existing, ""))
	}
}

func TestFreeSlots(t *testing.T) {
	open := at(9, 0)
	close := at(12, 0)
	existing := []bookingModel.Booking{
		mkBooking("b1", "t1", "s1", at(10, 0), at(10, 30), bookingModel.BookingStatusConfirmed),
	}

	slots := FreeSlots("t1", "s1", open, close, 30*time.Minute, 30, existing)

	assert.Equal(t, []time.Time{
		at(9, 0), at(9, 30), at(10, 30), at(11, 0), at(11, 30),
	}, slots)

	// Last slot must end exactly at closing time, never past it.
	longer := FreeSlots("t1", "s1", open, close, 45*time.Minute, 30, nil)
	for _, s := range longer {
		assert.False(t, s.Add(45*time.Minute).After(close))
	}

	assert.Empty(t, FreeSlots("t1", "s1", open, close, 30*time.Minute, 0, nil))
	assert.Empty(t, FreeSlots("t1", "s1", open, close, 0, 30, nil))
}
