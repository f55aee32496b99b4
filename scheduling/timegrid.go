// Package scheduling implements the salon's booking core: the time grid,
// per-staff working hours, availability resolution, the reservation
// lifecycle and the reservation catalog. It is storage-independent; the
// controllers load data through gorm and hand plain values in.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid defines the bookable slots of a day. Times are "HH:MM" strings at
// the boundary and minutes since midnight internally.
type Grid struct {
	Open        string // first bookable start, e.g. "09:00"
	Close       string // end of business, exclusive for slot ends
	SlotMinutes int
}

// DefaultGrid returns the salon's standard grid: 30-minute slots from
// 09:00 up to and including the last start that still begins before close.
func DefaultGrid() Grid {
	return Grid{Open: "09:00", Close: "18:00", SlotMinutes: 30}
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock converts minutes since midnight back to zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes returns t shifted forward by the given minutes. Bookings never
// span midnight; callers reject multi-day intervals upstream.
func AddMinutes(t string, minutes int) (string, error) {
	start, err := ParseClock(t)
	if err != nil {
		return "", err
	}
	if minutes < 0 {
		return "", fmt.Errorf("minutes must be non-negative, got %d", minutes)
	}
	end := start + minutes
	if end >= 24*60 {
		return "", fmt.Errorf("time %s + %d minutes crosses midnight", t, minutes)
	}
	return FormatClock(end), nil
}

// InRange reports whether t falls in the half-open interval [start, end).
func InRange(t, start, end string) bool {
	tm, err := ParseClock(t)
	if err != nil {
		return false
	}
	sm, err := ParseClock(start)
	if err != nil {
		return false
	}
	em, err := ParseClock(end)
	if err != nil {
		return false
	}
	return tm >= sm && tm < em
}

// overlaps reports whether [s1,e1) and [s2,e2) intersect. Touching
// intervals do not overlap.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// Slots returns every bookable start time in ascending order. The last
// slot is the last start strictly before Close.
func (g Grid) Slots() []string {
	open, err := ParseClock(g.Open)
	if err != nil {
		return nil
	}
	close, err := ParseClock(g.Close)
	if err != nil {
		return nil
	}
	if g.SlotMinutes <= 0 {
		return nil
	}
	var out []string
	for t := open; t < close; t += g.SlotMinutes {
		out = append(out, FormatClock(t))
	}
	return out
}

// IsSlot reports whether t is a valid grid start time.
func (g Grid) IsSlot(t string) bool {
	tm, err := ParseClock(t)
	if err != nil {
		return false
	}
	open, err := ParseClock(g.Open)
	if err != nil {
		return false
	}
	close, err := ParseClock(g.Close)
	if err != nil {
		return false
	}
	if tm < open || tm >= close {
		return false
	}
	return (tm-open)%g.SlotMinutes == 0
}
