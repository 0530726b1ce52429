package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range GetAllBookingStatuses() {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}
	assert.False(t, BookingStatus("rescheduled").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatusOccupies(t *testing.T) {
	assert.True(t, BookingStatusPending.Occupies())
	assert.True(t, BookingStatusConfirmed.Occupies())
	assert.True(t, BookingStatusCompleted.Occupies())

	assert.False(t, BookingStatusCancelled.Occupies())
	assert.False(t, BookingStatusNoShow.Occupies())
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
	assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusCompleted))
	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusNoShow))

	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCompleted))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
	assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusNoShow))
	assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusPending))

	// Terminal statuses never move again.
	for _, terminal := range []BookingStatus{BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow} {
		for _, target := range GetAllBookingStatuses() {
			assert.False(t, terminal.CanTransitionTo(target), "%s -> %s should be rejected", terminal, target)
		}
	}

	assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatus("unknown")))
}
