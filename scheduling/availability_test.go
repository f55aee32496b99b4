package scheduling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tuesday = "2026-08-25"
	sunday  = "2026-08-23"
)

func newTestResolver(bookings []Booking) (*Resolver, *Catalog) {
	catalog := NewCatalog(bookings)
	resolver := NewResolver(DefaultGrid(), NewPolicyBook(DefaultWeek()), catalog)
	return resolver, catalog
}

func conflictReason(t *testing.T, err error) ConflictReason {
	t.Helper()
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	return conflict.Reason
}

func TestCheckReasons(t *testing.T) {
	existing := Booking{
		ID:      "r1",
		StaffID: "staff-a",
		Date:    tuesday,
		Start:   "10:00",
		End:     "11:00",
		Status:  StatusScheduled,
	}
	resolver, _ := newTestResolver([]Booking{existing})

	tests := []struct {
		name     string
		date     string
		start    string
		duration int
		reason   ConflictReason
	}{
		{name: "closed sunday", date: sunday, start: "10:00", duration: 30, reason: ReasonNotWorkingDay},
		{name: "before shift", date: tuesday, start: "08:30", duration: 30, reason: ReasonOutsideShift},
		{name: "runs past shift end", date: tuesday, start: "17:30", duration: 60, reason: ReasonOutsideShift},
		{name: "inside break", date: tuesday, start: "12:00", duration: 60, reason: ReasonInsideBreak},
		{name: "partial break overlap", date: tuesday, start: "11:30", duration: 60, reason: ReasonInsideBreak},
		{name: "overlaps existing", date: tuesday, start: "10:30", duration: 60, reason: ReasonOverlapsReservation},
		{name: "same slot as existing", date: tuesday, start: "10:00", duration: 60, reason: ReasonOverlapsReservation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resolver.Check("staff-a", tt.date, tt.start, tt.duration, "")
			assert.Equal(t, tt.reason, conflictReason(t, err))
		})
	}
}

// Scenario: an existing 10:00-11:00 booking blocks 10:30-11:30 but not the
// back-to-back 11:00-12:00 request.
func TestBackToBackBookingsDoNotConflict(t *testing.T) {
	resolver, _ := newTestResolver([]Booking{{
		ID:      "r1",
		StaffID: "staff-a",
		Date:    tuesday,
		Start:   "10:00",
		End:     "11:00",
		Status:  StatusScheduled,
	}})

	err := resolver.Check("staff-a", tuesday, "10:30", 60, "")
	assert.Equal(t, ReasonOverlapsReservation, conflictReason(t, err))

	assert.NoError(t, resolver.Check("staff-a", tuesday, "11:00", 60, ""))
}

// P2: rescheduling a booking onto its own slot is not a self-conflict.
func TestRescheduleExcludesOwnBooking(t *testing.T) {
	resolver, _ := newTestResolver([]Booking{{
		ID:      "r1",
		StaffID: "staff-a",
		Date:    tuesday,
		Start:   "10:00",
		End:     "11:00",
		Status:  StatusScheduled,
	}})

	assert.Error(t, resolver.Check("staff-a", tuesday, "10:00", 60, ""),
		"without exclusion the slot is taken")
	assert.NoError(t, resolver.Check("staff-a", tuesday, "10:00", 60, "r1"),
		"the booking's own occupancy is excluded on reschedule")
	assert.NoError(t, resolver.Check("staff-a", tuesday, "10:30", 60, "r1"),
		"shifting within the freed interval also works")
}

// P6: cancelled bookings release their slots.
func TestCancelledBookingDoesNotBlock(t *testing.T) {
	resolver, _ := newTestResolver([]Booking{{
		ID:      "r1",
		StaffID: "staff-a",
		Date:    tuesday,
		Start:   "10:00",
		End:     "11:00",
		Status:  StatusCancelled,
	}})

	assert.NoError(t, resolver.Check("staff-a", tuesday, "10:00", 60, ""))
}

func TestCheckValidationErrors(t *testing.T) {
	resolver, _ := newTestResolver(nil)

	err := resolver.Check("staff-a", "not-a-date", "10:00", 30, "")
	assert.Error(t, err)
	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict), "malformed input is a validation error, not a conflict")

	assert.Error(t, resolver.Check("staff-a", tuesday, "10:61", 30, ""))
	assert.Error(t, resolver.Check("staff-a", tuesday, "10:00", 0, ""))
	assert.Error(t, resolver.Check("staff-a", tuesday, "10:00", -30, ""))
}

// P1: every start returned by BookableStarts passes Check.
func TestBookableStartsAreAllBookable(t *testing.T) {
	resolver, _ := newTestResolver([]Booking{
		{ID: "r1", StaffID: "staff-a", Date: tuesday, Start: "10:00", End: "11:00", Status: StatusScheduled},
		{ID: "r2", StaffID: "staff-a", Date: tuesday, Start: "15:00", End: "16:30", Status: StatusScheduled},
	})

	for _, duration := range []int{30, 60, 90, 120} {
		starts := resolver.BookableStarts("staff-a", tuesday, duration, "")
		for _, s := range starts {
			assert.NoError(t, resolver.Check("staff-a", tuesday, s, duration, ""),
				"start %s for %d minutes", s, duration)
		}
		for i := 1; i < len(starts); i++ {
			assert.Less(t, starts[i-1], starts[i], "starts must ascend")
		}
	}
}

func TestBookableStartsContent(t *testing.T) {
	resolver, _ := newTestResolver([]Booking{{
		ID:      "r1",
		StaffID: "staff-a",
		Date:    tuesday,
		Start:   "09:00",
		End:     "10:00",
		Status:  StatusScheduled,
	}})

	starts := resolver.BookableStarts("staff-a", tuesday, 60, "")
	assert.NotContains(t, starts, "09:00", "booked")
	assert.NotContains(t, starts, "09:30", "would overlap the booking")
	assert.Contains(t, starts, "10:00")
	assert.NotContains(t, starts, "11:30", "would run into the midday break")
	assert.Contains(t, starts, "13:00", "right after the break")
	assert.Contains(t, starts, "17:00", "last 60-minute start of the shift")
	assert.NotContains(t, starts, "17:30", "would run past shift end")
}

// Scenario 6: a closed weekday yields no bookable starts at all.
func TestBookableStartsEmptyOnClosedDay(t *testing.T) {
	resolver, _ := newTestResolver(nil)
	for _, duration := range []int{30, 60, 480} {
		assert.Empty(t, resolver.BookableStarts("staff-a", sunday, duration, ""))
	}
}

// Scenario 4: 30 + 45 minutes from 09:15 ends at 10:30.
func TestMultiServiceEndTime(t *testing.T) {
	booking := Booking{
		Start: "09:15",
		Services: []BookedService{
			{ServiceID: "svc-cut", Name: "Cut", DurationMinutes: 30, Price: 3000},
			{ServiceID: "svc-color", Name: "Color", DurationMinutes: 45, Price: 7000},
		},
	}
	require.Equal(t, 75, booking.TotalDuration())
	end, err := AddMinutes(booking.Start, booking.TotalDuration())
	require.NoError(t, err)
	assert.Equal(t, "10:30", end)
}
