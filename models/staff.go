package models

import (
	"time"

	"salonflow-backend/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff statuses. Terminated staff stay on record for historical
// reservations but are hidden from booking.
const (
	StaffActive     = "active"
	StaffOnLeave    = "on-leave"
	StaffTerminated = "terminated"
)

type Staff struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name   string `gorm:"not null"`
	Phone  string
	Role   string `gorm:"default:'stylist'"`
	Status string `gorm:"type:varchar(20);default:'active'"`

	WorkingHours []StaffWorkingHours `gorm:"foreignKey:StaffID"`
	Reservations []Reservation       `gorm:"foreignKey:StaffID"`

	gorm.Model
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Bookable reports whether new reservations may target this staff member.
func (s *Staff) Bookable() bool {
	return s.Status == StaffActive
}

// StaffWorkingHours is one row of a staff member's weekly schedule.
// Weekday follows time.Weekday numbering: 0 is Sunday, 6 is Saturday.
// Times are "HH:MM" in salon-local time.
type StaffWorkingHours struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_weekday,priority:1"`
	Weekday int       `gorm:"not null;uniqueIndex:idx_staff_weekday,priority:2"`

	IsWorking  bool   `gorm:"default:false"`
	ShiftStart string `gorm:"type:varchar(5)"`
	ShiftEnd   string `gorm:"type:varchar(5)"`
	BreakStart string `gorm:"type:varchar(5)"`
	BreakEnd   string `gorm:"type:varchar(5)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StaffWorkingHours) TableName() string { return "staff_working_hours" }

func (w *StaffWorkingHours) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// DayHours converts the row to the scheduling core's representation.
func (w *StaffWorkingHours) DayHours() scheduling.DayHours {
	return scheduling.DayHours{
		Working:    w.IsWorking,
		ShiftStart: w.ShiftStart,
		ShiftEnd:   w.ShiftEnd,
		BreakStart: w.BreakStart,
		BreakEnd:   w.BreakEnd,
	}
}
