package scheduling

import (
	"fmt"
	"time"
)

// DayHours describes one staff member's hours on one weekday. All times
// are "HH:MM" in salon-local time. When Working is false the remaining
// fields are ignored.
type DayHours struct {
	Working    bool   `json:"isWorking"`
	ShiftStart string `json:"shiftStart,omitempty"`
	ShiftEnd   string `json:"shiftEnd,omitempty"`
	BreakStart string `json:"breakStart,omitempty"`
	BreakEnd   string `json:"breakEnd,omitempty"`
}

// HasBreak reports whether a break interval is configured.
func (d DayHours) HasBreak() bool {
	return d.BreakStart != "" && d.BreakEnd != ""
}

// Validate checks internal consistency: parseable times, shift start
// before end, and any break strictly inside the shift.
func (d DayHours) Validate() error {
	if !d.Working {
		return nil
	}
	start, err := ParseClock(d.ShiftStart)
	if err != nil {
		return fmt.Errorf("shift start: %w", err)
	}
	end, err := ParseClock(d.ShiftEnd)
	if err != nil {
		return fmt.Errorf("shift end: %w", err)
	}
	if start >= end {
		return fmt.Errorf("shift start %s must be before shift end %s", d.ShiftStart, d.ShiftEnd)
	}
	if d.BreakStart == "" && d.BreakEnd == "" {
		return nil
	}
	if d.BreakStart == "" || d.BreakEnd == "" {
		return fmt.Errorf("break requires both start and end")
	}
	bs, err := ParseClock(d.BreakStart)
	if err != nil {
		return fmt.Errorf("break start: %w", err)
	}
	be, err := ParseClock(d.BreakEnd)
	if err != nil {
		return fmt.Errorf("break end: %w", err)
	}
	if bs >= be {
		return fmt.Errorf("break start %s must be before break end %s", d.BreakStart, d.BreakEnd)
	}
	if bs < start || be > end {
		return fmt.Errorf("break %s-%s outside shift %s-%s", d.BreakStart, d.BreakEnd, d.ShiftStart, d.ShiftEnd)
	}
	return nil
}

// WeekPolicy maps weekday (time.Sunday..time.Saturday) to that day's hours.
// Missing weekdays resolve as not working.
type WeekPolicy map[time.Weekday]DayHours

// DefaultWeek is the salon's standard week: closed Sunday and Monday,
// shortened Saturday with a shifted break, full hours Tuesday through
// Friday with a midday break. Staff overrides replace it per weekday.
func DefaultWeek() WeekPolicy {
	full := DayHours{
		Working:    true,
		ShiftStart: "09:00",
		ShiftEnd:   "18:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	}
	return WeekPolicy{
		time.Tuesday:   full,
		time.Wednesday: full,
		time.Thursday:  full,
		time.Friday:    full,
		time.Saturday: {
			Working:    true,
			ShiftStart: "10:00",
			ShiftEnd:   "17:00",
			BreakStart: "13:30",
			BreakEnd:   "14:00",
		},
	}
}

// PolicyBook resolves working hours per staff member. Staff without an
// override use the default week; staff and weekdays unknown to the book
// resolve as not working.
type PolicyBook struct {
	defaults  WeekPolicy
	overrides map[string]WeekPolicy // staffID -> week
}

// NewPolicyBook creates a book backed by the given default week.
func NewPolicyBook(defaults WeekPolicy) *PolicyBook {
	return &PolicyBook{
		defaults:  defaults,
		overrides: make(map[string]WeekPolicy),
	}
}

// SetStaffWeek replaces the full week for one staff member. The override
// is authoritative: weekdays absent from it are closed for that staff
// member even if the default week is open.
func (p *PolicyBook) SetStaffWeek(staffID string, week WeekPolicy) {
	p.overrides[staffID] = week
}

// SetStaffDay overrides a single weekday for one staff member, keeping
// the default week for the rest.
func (p *PolicyBook) SetStaffDay(staffID string, day time.Weekday, hours DayHours) {
	week, ok := p.overrides[staffID]
	if !ok {
		week = make(WeekPolicy, len(p.defaults))
		for d, h := range p.defaults {
			week[d] = h
		}
		p.overrides[staffID] = week
	}
	week[day] = hours
}

// Resolve returns the effective hours for a staff member on a date. A
// missing entry fails closed: no policy means not working.
func (p *PolicyBook) Resolve(staffID string, date time.Time) DayHours {
	week, ok := p.overrides[staffID]
	if !ok {
		week = p.defaults
	}
	hours, ok := week[date.Weekday()]
	if !ok {
		return DayHours{Working: false}
	}
	return hours
}

// ParseDate parses a "YYYY-MM-DD" date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
