package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-08-25 is a Tuesday; the rest of that week follows.
func weekday(d time.Weekday) time.Time {
	base := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC) // Sunday
	return base.AddDate(0, 0, int(d))
}

func TestDefaultWeek(t *testing.T) {
	book := NewPolicyBook(DefaultWeek())

	sun := book.Resolve("s1", weekday(time.Sunday))
	assert.False(t, sun.Working, "Sunday is closed by default")

	mon := book.Resolve("s1", weekday(time.Monday))
	assert.False(t, mon.Working, "Monday is closed by default")

	tue := book.Resolve("s1", weekday(time.Tuesday))
	require.True(t, tue.Working)
	assert.Equal(t, "09:00", tue.ShiftStart)
	assert.Equal(t, "18:00", tue.ShiftEnd)
	assert.Equal(t, "12:00", tue.BreakStart)
	assert.Equal(t, "13:00", tue.BreakEnd)

	sat := book.Resolve("s1", weekday(time.Saturday))
	require.True(t, sat.Working)
	assert.Equal(t, "10:00", sat.ShiftStart)
	assert.Equal(t, "17:00", sat.ShiftEnd)
	assert.Equal(t, "13:30", sat.BreakStart)
	assert.Equal(t, "14:00", sat.BreakEnd)
}

func TestStaffWeekOverride(t *testing.T) {
	book := NewPolicyBook(DefaultWeek())
	book.SetStaffWeek("s2", WeekPolicy{
		time.Monday: {Working: true, ShiftStart: "11:00", ShiftEnd: "20:00"},
	})

	mon := book.Resolve("s2", weekday(time.Monday))
	require.True(t, mon.Working, "override opens Monday for s2")
	assert.Equal(t, "11:00", mon.ShiftStart)

	// The override week is authoritative: Tuesday is absent from it, so
	// s2 does not fall back to the default Tuesday hours.
	tue := book.Resolve("s2", weekday(time.Tuesday))
	assert.False(t, tue.Working)

	// Other staff keep the defaults.
	assert.False(t, book.Resolve("s1", weekday(time.Monday)).Working)
	assert.True(t, book.Resolve("s1", weekday(time.Tuesday)).Working)
}

func TestStaffDayOverrideKeepsRestOfWeek(t *testing.T) {
	book := NewPolicyBook(DefaultWeek())
	book.SetStaffDay("s3", time.Sunday, DayHours{
		Working:    true,
		ShiftStart: "10:00",
		ShiftEnd:   "14:00",
	})

	assert.True(t, book.Resolve("s3", weekday(time.Sunday)).Working)
	assert.True(t, book.Resolve("s3", weekday(time.Tuesday)).Working, "default week carried over")
	assert.False(t, book.Resolve("s3", weekday(time.Monday)).Working)
}

// Missing policy must fail closed, never default to open.
func TestResolveFailsClosed(t *testing.T) {
	book := NewPolicyBook(WeekPolicy{})
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.False(t, book.Resolve("anyone", weekday(d)).Working)
	}
}

func TestDayHoursValidate(t *testing.T) {
	tests := []struct {
		name    string
		hours   DayHours
		wantErr bool
	}{
		{
			name:  "closed day needs nothing",
			hours: DayHours{Working: false},
		},
		{
			name:  "valid no break",
			hours: DayHours{Working: true, ShiftStart: "09:00", ShiftEnd: "18:00"},
		},
		{
			name:  "valid with break",
			hours: DayHours{Working: true, ShiftStart: "09:00", ShiftEnd: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
		},
		{
			name:    "shift inverted",
			hours:   DayHours{Working: true, ShiftStart: "18:00", ShiftEnd: "09:00"},
			wantErr: true,
		},
		{
			name:    "break inverted",
			hours:   DayHours{Working: true, ShiftStart: "09:00", ShiftEnd: "18:00", BreakStart: "13:00", BreakEnd: "12:00"},
			wantErr: true,
		},
		{
			name:    "break outside shift",
			hours:   DayHours{Working: true, ShiftStart: "09:00", ShiftEnd: "18:00", BreakStart: "18:00", BreakEnd: "19:00"},
			wantErr: true,
		},
		{
			name:    "half a break",
			hours:   DayHours{Working: true, ShiftStart: "09:00", ShiftEnd: "18:00", BreakStart: "12:00"},
			wantErr: true,
		},
		{
			name:    "unparseable shift",
			hours:   DayHours{Working: true, ShiftStart: "nine", ShiftEnd: "18:00"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hours.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-08-25")
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, d.Weekday())

	_, err = ParseDate("25/08/2026")
	assert.Error(t, err)
}
