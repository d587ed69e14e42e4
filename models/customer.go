package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	Name       string `gorm:"not null"`
	Phone      string `gorm:"not null;uniqueIndex"`
	Email      string
	NationalID string `gorm:"index"`
	LicenceNo  string
	Address    string
	Notes      string

	TotalRentals int   `gorm:"default:0"`
	TotalSpent   int64 `gorm:"default:0"` // kuruş
	LastRental   *time.Time
	IsActive     bool `gorm:"default:true"`

	Rentals      []Rental      `gorm:"foreignKey:CustomerID"`
	Reservations []Reservation `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
