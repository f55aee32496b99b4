package scheduling

import "fmt"

// ConflictReason identifies why a requested slot is not bookable.
type ConflictReason string

const (
	ReasonNotWorkingDay       ConflictReason = "not-working-day"
	ReasonOutsideShift        ConflictReason = "outside-shift"
	ReasonInsideBreak         ConflictReason = "inside-break"
	ReasonOverlapsReservation ConflictReason = "overlaps-reservation"
)

// ConflictError reports an unavailable slot with a machine-readable
// reason so the caller can render a specific message.
type ConflictError struct {
	Reason  ConflictReason
	StaffID string
	Date    string
	Start   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s %s unavailable for staff %s: %s", e.Date, e.Start, e.StaffID, e.Reason)
}

// ConflictSource supplies the existing occupancy a slot must not collide
// with. *Catalog satisfies it.
type ConflictSource interface {
	ConflictsFor(staffID, date string) []Booking
}

// Resolver computes slot availability from the grid, the working-hours
// book and existing bookings.
type Resolver struct {
	Grid      Grid
	Policies  *PolicyBook
	Conflicts ConflictSource
}

// NewResolver wires a resolver over a policy book and a conflict source.
func NewResolver(grid Grid, policies *PolicyBook, conflicts ConflictSource) *Resolver {
	return &Resolver{Grid: grid, Policies: policies, Conflicts: conflicts}
}

// Check validates a proposed interval. excludeID names a reservation
// whose own occupancy is ignored, so rescheduling a booking onto its own
// slot never conflicts with itself; pass "" when creating. A nil return
// means bookable; otherwise the error is a *ConflictError or a plain
// validation error for malformed input.
func (r *Resolver) Check(staffID, date, start string, durationMinutes int, excludeID string) error {
	day, err := ParseDate(date)
	if err != nil {
		return err
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	startMin, err := ParseClock(start)
	if err != nil {
		return err
	}
	endMin := startMin + durationMinutes
	if endMin >= 24*60 {
		return fmt.Errorf("booking %s + %d minutes crosses midnight", start, durationMinutes)
	}

	hours := r.Policies.Resolve(staffID, day)
	if !hours.Working {
		return &ConflictError{Reason: ReasonNotWorkingDay, StaffID: staffID, Date: date, Start: start}
	}

	shiftStart, err := ParseClock(hours.ShiftStart)
	if err != nil {
		return fmt.Errorf("staff %s %s hours: %w", staffID, day.Weekday(), err)
	}
	shiftEnd, err := ParseClock(hours.ShiftEnd)
	if err != nil {
		return fmt.Errorf("staff %s %s hours: %w", staffID, day.Weekday(), err)
	}
	if startMin < shiftStart || endMin > shiftEnd {
		return &ConflictError{Reason: ReasonOutsideShift, StaffID: staffID, Date: date, Start: start}
	}

	if hours.HasBreak() {
		breakStart, err := ParseClock(hours.BreakStart)
		if err != nil {
			return fmt.Errorf("staff %s %s break: %w", staffID, day.Weekday(), err)
		}
		breakEnd, err := ParseClock(hours.BreakEnd)
		if err != nil {
			return fmt.Errorf("staff %s %s break: %w", staffID, day.Weekday(), err)
		}
		// Partial overlap with the break is a conflict too.
		if overlaps(startMin, endMin, breakStart, breakEnd) {
			return &ConflictError{Reason: ReasonInsideBreak, StaffID: staffID, Date: date, Start: start}
		}
	}

	if r.Conflicts != nil {
		for _, existing := range r.Conflicts.ConflictsFor(staffID, date) {
			if excludeID != "" && existing.ID == excludeID {
				continue
			}
			exStart, err := ParseClock(existing.Start)
			if err != nil {
				continue
			}
			exEnd, err := ParseClock(existing.End)
			if err != nil {
				continue
			}
			if overlaps(startMin, endMin, exStart, exEnd) {
				return &ConflictError{Reason: ReasonOverlapsReservation, StaffID: staffID, Date: date, Start: start}
			}
		}
	}

	return nil
}

// IsBookable reports whether the interval passes every availability check.
func (r *Resolver) IsBookable(staffID, date, start string, durationMinutes int) bool {
	return r.Check(staffID, date, start, durationMinutes, "") == nil
}

// BookableStarts filters the grid's slots through Check, in ascending
// time order. excludeID carries the reschedule self-exclusion through to
// the overlap check.
func (r *Resolver) BookableStarts(staffID, date string, durationMinutes int, excludeID string) []string {
	starts := make([]string, 0)
	for _, slot := range r.Grid.Slots() {
		if r.Check(staffID, date, slot, durationMinutes, excludeID) == nil {
			starts = append(starts, slot)
		}
	}
	return starts
}
