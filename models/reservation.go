package models

import (
	"salonflow-backend/scheduling"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation is a booked appointment. Customer, staff and service
// details are snapshots taken at booking time so the record stays
// accurate when the underlying entities change later.
type Reservation struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerName  string    `gorm:"not null"`
	CustomerPhone string

	Date      string `gorm:"type:varchar(10);index;not null"` // YYYY-MM-DD
	StartTime string `gorm:"type:varchar(5);not null"`        // HH:MM
	EndTime   string `gorm:"type:varchar(5);not null"`        // derived from service durations

	StaffID   uuid.UUID `gorm:"type:uuid;index;not null"`
	StaffName string    `gorm:"not null"`

	Status string `gorm:"type:varchar(20);default:'scheduled';index"`
	Memo   string
	Amount *int64 // overrides the summed service prices when set

	Items []ReservationItem `gorm:"foreignKey:ReservationID"`

	gorm.Model
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// ReservationItem is one service line on a reservation, snapshotted from
// the service catalog at booking time.
type ReservationItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ReservationID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceName   string    `gorm:"not null"`
	Duration      int       `gorm:"not null"` // minutes
	Price         int64     `gorm:"not null"`
	Position      int       `gorm:"default:0"` // preserves service order
}

func (i *ReservationItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// ToBooking maps the persisted reservation into the scheduling core's
// plain view.
func (r *Reservation) ToBooking() scheduling.Booking {
	services := make([]scheduling.BookedService, len(r.Items))
	for i, item := range r.Items {
		services[i] = scheduling.BookedService{
			ServiceID:       item.ServiceID.String(),
			Name:            item.ServiceName,
			DurationMinutes: item.Duration,
			Price:           item.Price,
		}
	}
	return scheduling.Booking{
		ID:            r.ID.String(),
		CustomerID:    r.CustomerID.String(),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,
		Start:         r.StartTime,
		End:           r.EndTime,
		Services:      services,
		StaffID:       r.StaffID.String(),
		StaffName:     r.StaffName,
		Status:        scheduling.Status(r.Status),
		Memo:          r.Memo,
		Amount:        r.Amount,
	}
}

// ToBookings maps a reservation slice for the catalog.
func ToBookings(reservations []Reservation) []scheduling.Booking {
	out := make([]scheduling.Booking, len(reservations))
	for i := range reservations {
		out[i] = reservations[i].ToBooking()
	}
	return out
}
