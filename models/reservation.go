package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation holds a vehicle for a customer ahead of a rental. Deposit
// is in kuruş; it is informational and does not enter balance math until
// the rental is created.
type Reservation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	VehicleID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	StartDate time.Time         `gorm:"not null"`
	EndDate   time.Time         `gorm:"not null"`
	Deposit   int64             `gorm:"default:0"`
	Status    ReservationStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Note      string

	gorm.Model
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
