package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_salon_phone,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Phone       string `gorm:"not null;uniqueIndex:idx_salon_phone,priority:2"`
	Email       string
	Birthday    *time.Time
	Anniversary *time.Time
	Notes       string
	TotalVisits int    `gorm:"default:0"`
	TotalSpent  int64  `gorm:"default:0"` // smallest currency unit
	LastVisit   *time.Time
	IsActive    bool   `gorm:"default:true"`

	Reservations []Reservation `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
