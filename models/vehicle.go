package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleIdle    VehicleStatus = "IDLE"
	VehicleRented  VehicleStatus = "RENTED"
	VehicleService VehicleStatus = "SERVICE"
)

type Vehicle struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key"`
	Plate     string        `gorm:"uniqueIndex;not null"`
	Brand     string        `gorm:"not null"`
	ModelName string        `gorm:"column:model;not null" json:"model"`
	Year      int           `gorm:"default:0"`
	Km        int           `gorm:"default:0"`
	Status    VehicleStatus `gorm:"type:varchar(20);not null;default:'IDLE'"`
	Notes     string
	IsActive  bool `gorm:"default:true"`

	Rentals      []Rental      `gorm:"foreignKey:VehicleID"`
	Reservations []Reservation `gorm:"foreignKey:VehicleID"`

	gorm.Model
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
