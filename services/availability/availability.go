// Package availability decides whether a proposed appointment slot is free.
// It is a pure predicate over bookings the caller already loaded; data access
// and the database-level double-booking guard live elsewhere.
package availability

import (
	"time"

	bookingModel "salon-booking/models/booking"
)

// Overlaps is the half-open interval overlap test used everywhere in this
// package: intervals that merely touch (one ends exactly when the other
// starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckAvailability reports whether [start, end) is free for the given
// tenant and staff member among the provided bookings.
//
// Availability is a safety property, so invalid input fails closed: empty
// tenant or staff IDs and non-positive intervals return false instead of
// erroring. Bookings of other tenants or other staff never affect the
// result, and cancelled/no-show bookings are transparent. excludeBookingID
// lets a reschedule skip the booking being edited; pass "" otherwise.
func CheckAvailability(tenantID, staffID string, start, end time.Time, existing []bookingModel.Booking, excludeBookingID string) bool {
	if tenantID == "" || staffID == "" {
		return false
	}
	if !start.Before(end) {
		return false
	}

	for _, b := range existing {
		if b.TenantID != tenantID || b.StaffID != staffID {
			continue
		}
		if !b.Status.Occupies() {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if Overlaps(start, end, b.StartsAt, b.EndsAt) {
			return false
		}
	}
	return true
}

// FreeSlots enumerates the bookable start times for one staff member on one
// day. Candidates are laid out every stepMinutes from open to close; each is
// kept iff a slot of the service duration passes CheckAvailability.
func FreeSlots(tenantID, staffID string, open, close time.Time, duration time.Duration, stepMinutes int, existing []bookingModel.Booking) []time.Time {
	slots := []time.Time{}
	if stepMinutes <= 0 || duration <= 0 {
		return slots
	}

	step := time.Duration(stepMinutes) * time.Minute
	for start := open; !start.Add(duration).After(close); start = start.Add(step) {
		if CheckAvailability(tenantID, staffID, start, start.Add(duration), existing, "") {
			slots = append(slots, start)
		}
	}
	return slots
}
