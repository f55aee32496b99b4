package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Address string
	Phone   string

	AppointmentReminders  bool `gorm:"default:true"`
	BirthdayReminders     bool `gorm:"default:true"`
	SMSNotifications      bool `gorm:"default:false"`
	WhatsAppNotifications bool `gorm:"column:whatsapp_notifications;default:false"`

	Users             []User             `gorm:"foreignKey:SalonID"`
	Customers         []Customer         `gorm:"foreignKey:SalonID"`
	Services          []Service          `gorm:"foreignKey:SalonID"`
	Staff             []Staff            `gorm:"foreignKey:SalonID"`
	Reservations      []Reservation      `gorm:"foreignKey:SalonID"`
	ReminderTemplates []ReminderTemplate `gorm:"foreignKey:SalonID"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
