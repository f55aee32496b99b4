package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBookings() []Booking {
	return []Booking{
		{
			ID: "r1", CustomerID: "c1", CustomerName: "Mina Park", CustomerPhone: "010-1111-2222",
			Date: "2026-08-25", Start: "10:00", End: "11:00",
			Services: []BookedService{{ServiceID: "svc-cut", Name: "Cut", DurationMinutes: 60, Price: 30000}},
			StaffID:  "staff-a", StaffName: "Ara Lee", Status: StatusScheduled,
		},
		{
			ID: "r2", CustomerID: "c2", CustomerName: "Jun Kim", CustomerPhone: "010-3333-4444",
			Date: "2026-08-25", Start: "09:00", End: "09:30",
			Services: []BookedService{{ServiceID: "svc-perm", Name: "Perm", DurationMinutes: 30, Price: 80000}},
			StaffID:  "staff-b", StaffName: "Bora Choi", Status: StatusCompleted,
		},
		{
			ID: "r3", CustomerID: "c1", CustomerName: "Mina Park", CustomerPhone: "010-1111-2222",
			Date: "2026-08-26", Start: "14:00", End: "15:00",
			Services: []BookedService{{ServiceID: "svc-color", Name: "Color", DurationMinutes: 60, Price: 70000}},
			StaffID:  "staff-a", StaffName: "Ara Lee", Status: StatusCancelled,
		},
		{
			ID: "r4", CustomerID: "c3", CustomerName: "Hana Seo", CustomerPhone: "010-5555-6666",
			Date: "2026-08-27", Start: "11:00", End: "12:00",
			Services: []BookedService{{ServiceID: "svc-cut", Name: "Cut", DurationMinutes: 60, Price: 30000}},
			StaffID:  "staff-a", StaffName: "Ara Lee", Status: StatusScheduled,
		},
	}
}

func TestListInclusiveBounds(t *testing.T) {
	c := NewCatalog(sampleBookings())

	got := c.List("2026-08-25", "2026-08-26")
	require.Len(t, got, 3)

	got = c.List("2026-08-26", "2026-08-26")
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)

	assert.Empty(t, c.List("2026-09-01", "2026-09-30"))
}

func TestSelectConjunctive(t *testing.T) {
	c := NewCatalog(sampleBookings())

	byStaff := c.Select(Filter{StaffID: "staff-a"})
	assert.Len(t, byStaff, 3)

	byStaffAndStatus := c.Select(Filter{StaffID: "staff-a", Status: StatusScheduled})
	assert.Len(t, byStaffAndStatus, 2)

	byService := c.Select(Filter{ServiceID: "svc-perm"})
	require.Len(t, byService, 1)
	assert.Equal(t, "r2", byService[0].ID)

	nothing := c.Select(Filter{StaffID: "staff-b", ServiceID: "svc-cut"})
	assert.Empty(t, nothing)
}

func TestSelectFreeText(t *testing.T) {
	c := NewCatalog(sampleBookings())

	tests := []struct {
		name string
		text string
		ids  []string
	}{
		{name: "customer name case-insensitive", text: "mina", ids: []string{"r1", "r3"}},
		{name: "phone fragment", text: "3333", ids: []string{"r2"}},
		{name: "staff name", text: "bora", ids: []string{"r2"}},
		{name: "service name", text: "color", ids: []string{"r3"}},
		{name: "no match", text: "zzz", ids: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Select(Filter{FreeText: tt.text})
			var ids []string
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestSortFields(t *testing.T) {
	bookings := sampleBookings()

	Sort(bookings, SortByDateTime, true)
	assert.Equal(t, "r2", bookings[0].ID, "09:00 before 10:00 on the same date")
	assert.Equal(t, "r4", bookings[len(bookings)-1].ID)

	Sort(bookings, SortByDateTime, false)
	assert.Equal(t, "r4", bookings[0].ID)

	Sort(bookings, SortByCustomerName, true)
	assert.Equal(t, "Hana Seo", bookings[0].CustomerName)

	Sort(bookings, SortByStatus, true)
	assert.Equal(t, StatusCancelled, bookings[0].Status, "ordinal string order")
}

func TestParseSortField(t *testing.T) {
	for _, valid := range []string{"dateTime", "customerName", "staffName", "status"} {
		got, err := ParseSortField(valid)
		require.NoError(t, err)
		assert.Equal(t, SortField(valid), got)
	}

	_, err := ParseSortField("date")
	assert.Error(t, err, "unknown fields must not silently fall back")
	_, err = ParseSortField("")
	assert.Error(t, err)
}

// Equal keys keep their relative order: the sort must be stable.
func TestSortStable(t *testing.T) {
	bookings := sampleBookings()
	Sort(bookings, SortByDateTime, true)

	Sort(bookings, SortByStaffName, true)
	var staffAIDs []string
	for _, b := range bookings {
		if b.StaffID == "staff-a" {
			staffAIDs = append(staffAIDs, b.ID)
		}
	}
	assert.Equal(t, []string{"r1", "r3", "r4"}, staffAIDs,
		"date+time order preserved within equal staff names")
}

func TestConflictsForExcludesCancelled(t *testing.T) {
	c := NewCatalog(sampleBookings())

	conflicts := c.ConflictsFor("staff-a", "2026-08-26")
	assert.Empty(t, conflicts, "r3 is cancelled and releases its slot")

	conflicts = c.ConflictsFor("staff-a", "2026-08-25")
	require.Len(t, conflicts, 1)
	assert.Equal(t, "r1", conflicts[0].ID)

	assert.Empty(t, c.ConflictsFor("staff-z", "2026-08-25"))
}

func TestConflictsForOrdersByStart(t *testing.T) {
	c := NewCatalog([]Booking{
		{ID: "late", StaffID: "s", Date: "2026-08-25", Start: "15:00", End: "16:00", Status: StatusScheduled},
		{ID: "early", StaffID: "s", Date: "2026-08-25", Start: "09:00", End: "10:00", Status: StatusNoShow},
	})
	conflicts := c.ConflictsFor("s", "2026-08-25")
	require.Len(t, conflicts, 2, "no-show still occupies its historical slot")
	assert.Equal(t, "early", conflicts[0].ID)
	assert.Equal(t, "late", conflicts[1].ID)
}

func TestBookingTotals(t *testing.T) {
	b := Booking{
		Services: []BookedService{
			{DurationMinutes: 30, Price: 30000},
			{DurationMinutes: 45, Price: 70000},
		},
	}
	assert.Equal(t, 75, b.TotalDuration())
	assert.Equal(t, int64(100000), b.TotalAmount())

	override := int64(90000)
	b.Amount = &override
	assert.Equal(t, override, b.TotalAmount(), "explicit amount wins")
}

func TestCatalogGetAndReplace(t *testing.T) {
	c := NewCatalog(sampleBookings())

	b, ok := c.Get("r2")
	require.True(t, ok)
	assert.Equal(t, "Jun Kim", b.CustomerName)

	_, ok = c.Get("nope")
	assert.False(t, ok)

	c.Replace(nil)
	assert.Empty(t, c.All())
}
