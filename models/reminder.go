package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder kinds.
const (
	ReminderAppointment = "appointment"
	ReminderBirthday    = "birthday"
)

type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Type     string    `gorm:"type:varchar(20);not null"` // appointment, birthday
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

type ReminderLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	SalonID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index"` // set for appointment reminders
	TemplateID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Type          string     `gorm:"type:varchar(20)"` // appointment, birthday
	Message       string     `gorm:"type:text"`
	Status        string     `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage  string     `gorm:"type:text"`
	Channel       string     `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt        time.Time
	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
