package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "09:15", want: 555},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "9", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClockZeroPads(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "18:30", FormatClock(1110))
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("09:15", 75)
	require.NoError(t, err)
	assert.Equal(t, "10:30", got)

	got, err = AddMinutes("10:00", 0)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got)

	_, err = AddMinutes("23:30", 60)
	assert.Error(t, err, "crossing midnight must be rejected")

	_, err = AddMinutes("10:00", -30)
	assert.Error(t, err, "negative durations must be rejected")
}

// End-time derivation is a pure recomputation: applying it twice with a
// zero remainder changes nothing.
func TestAddMinutesIdempotentRecompute(t *testing.T) {
	end, err := AddMinutes("09:15", 75)
	require.NoError(t, err)
	again, err := AddMinutes(end, 0)
	require.NoError(t, err)
	assert.Equal(t, end, again)
}

func TestInRangeHalfOpen(t *testing.T) {
	assert.True(t, InRange("09:00", "09:00", "18:00"))
	assert.True(t, InRange("17:59", "09:00", "18:00"))
	assert.False(t, InRange("18:00", "09:00", "18:00"), "end is exclusive")
	assert.False(t, InRange("08:59", "09:00", "18:00"))
}

func TestGridSlots(t *testing.T) {
	g := DefaultGrid()
	slots := g.Slots()
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1], "last start is strictly before close")
	assert.Len(t, slots, 18)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i], "slots must ascend")
	}
}

func TestGridIsSlot(t *testing.T) {
	g := DefaultGrid()
	assert.True(t, g.IsSlot("09:00"))
	assert.True(t, g.IsSlot("17:30"))
	assert.False(t, g.IsSlot("09:15"), "off-grid time")
	assert.False(t, g.IsSlot("18:00"), "close is not a bookable start")
	assert.False(t, g.IsSlot("08:30"))
}

// Overlap is symmetric and strictly half-open.
func TestOverlapSymmetry(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{name: "disjoint", s1: 540, e1: 600, s2: 660, e2: 720, want: false},
		{name: "touching", s1: 540, e1: 600, s2: 600, e2: 660, want: false},
		{name: "partial", s1: 540, e1: 630, s2: 600, e2: 660, want: true},
		{name: "contained", s1: 540, e1: 720, s2: 600, e2: 660, want: true},
		{name: "identical", s1: 540, e1: 600, s2: 540, e2: 600, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			assert.Equal(t, tt.want, overlaps(tt.s2, tt.e2, tt.s1, tt.e1), "overlap must be symmetric")
		})
	}
}
