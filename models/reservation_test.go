package models

import (
	"testing"

	"salonflow-backend/scheduling"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBookingMapsSnapshots(t *testing.T) {
	r := Reservation{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Mia Park",
		CustomerPhone: "+14155550101",
		Date:          "2026-09-01",
		StartTime:     "10:00",
		EndTime:       "11:15",
		StaffID:       uuid.New(),
		StaffName:     "Lena",
		Status:        "scheduled",
		Memo:          "first visit",
		Items: []ReservationItem{
			{ServiceID: uuid.New(), ServiceName: "Cut", Duration: 45, Price: 4000, Position: 0},
			{ServiceID: uuid.New(), ServiceName: "Blowout", Duration: 30, Price: 2500, Position: 1},
		},
	}

	b := r.ToBooking()

	assert.Equal(t, r.ID.String(), b.ID)
	assert.Equal(t, "Mia Park", b.CustomerName)
	assert.Equal(t, "10:00", b.Start)
	assert.Equal(t, "11:15", b.End)
	assert.Equal(t, scheduling.StatusScheduled, b.Status)
	require.Len(t, b.Services, 2)
	assert.Equal(t, "Cut", b.Services[0].Name)
	assert.Equal(t, 75, b.TotalDuration())
	assert.Equal(t, int64(6500), b.TotalAmount())
}

func TestToBookingAmountOverride(t *testing.T) {
	amount := int64(5000)
	r := Reservation{
		ID:     uuid.New(),
		Amount: &amount,
		Items: []ReservationItem{
			{ServiceID: uuid.New(), ServiceName: "Color", Duration: 90, Price: 8000},
		},
	}

	b := r.ToBooking()
	assert.Equal(t, int64(5000), b.TotalAmount())
}

func TestToBookingsPreservesOrder(t *testing.T) {
	first := Reservation{ID: uuid.New(), Date: "2026-09-01", StartTime: "09:00"}
	second := Reservation{ID: uuid.New(), Date: "2026-09-01", StartTime: "10:00"}

	bookings := ToBookings([]Reservation{first, second})
	require.Len(t, bookings, 2)
	assert.Equal(t, first.ID.String(), bookings[0].ID)
	assert.Equal(t, second.ID.String(), bookings[1].ID)
}

func TestStaffBookable(t *testing.T) {
	assert.True(t, (&Staff{Status: StaffActive}).Bookable())
	assert.False(t, (&Staff{Status: StaffOnLeave}).Bookable())
	assert.False(t, (&Staff{Status: StaffTerminated}).Bookable())
}

func TestStaffWorkingHoursDayHours(t *testing.T) {
	row := StaffWorkingHours{
		Weekday:    2,
		IsWorking:  true,
		ShiftStart: "11:00",
		ShiftEnd:   "19:00",
		BreakStart: "14:00",
		BreakEnd:   "14:30",
	}

	hours := row.DayHours()
	assert.True(t, hours.Working)
	assert.Equal(t, "11:00", hours.ShiftStart)
	assert.True(t, hours.HasBreak())
	assert.NoError(t, hours.Validate())
}
