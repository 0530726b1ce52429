package booking

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	default:
		return false
	}
}

// Occupies returns true if a booking in this status blocks its time slot.
// Cancelled and no-show bookings are transparent to new bookings.
func (bs BookingStatus) Occupies() bool {
	return bs == BookingStatusPending || bs == BookingStatusConfirmed || bs == BookingStatusCompleted
}

// IsTerminal returns true if the booking can no longer change status
func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusCancelled || bs == BookingStatusCompleted || bs == BookingStatusNoShow
}

// CanTransitionTo reports whether a staff/admin action may move the booking
// from its current status to the target status.
func (bs BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if !target.IsValid() || bs.IsTerminal() {
		return false
	}
	switch bs {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCompleted || target == BookingStatusCancelled || target == BookingStatusNoShow
	default:
		return false
	}
}

// GetAllBookingStatuses returns all valid booking statuses
func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCancelled,
		BookingStatusCompleted,
		BookingStatusNoShow,
	}
}
