package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	BasePrice   int64     `gorm:"not null"` // smallest currency unit
	Duration    int       `gorm:"not null"` // in minutes
	Category    string    `gorm:"default:'General'"`
	IsActive    bool      `gorm:"default:true"`

	ReservationItems []ReservationItem `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
