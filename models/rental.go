package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RentalStatus string

const (
	RentalActive    RentalStatus = "ACTIVE"
	RentalReturned  RentalStatus = "RETURNED"
	RentalCompleted RentalStatus = "COMPLETED"
	RentalCancelled RentalStatus = "CANCELLED"
)

// Rental is the aggregate root for balance purposes: TotalDue and Balance
// are derived fields, recomputed by the reconciler after every mutation
// and never edited directly. All monetary fields are int64 kuruş.
type Rental struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	RentalNo        string    `gorm:"uniqueIndex;not null"`
	VehicleID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	Days       int   `gorm:"not null;default:1"`
	DailyPrice int64 `gorm:"not null"`
	KmDiff     int64 `gorm:"default:0"`
	Cleaning   int64 `gorm:"default:0"`
	Hgs        int64 `gorm:"default:0"`
	Damage     int64 `gorm:"default:0"`
	Fuel       int64 `gorm:"default:0"`

	// Legacy inline payment slots, kept alongside the payments ledger.
	Upfront int64 `gorm:"default:0"`
	Pay1    int64 `gorm:"default:0"`
	Pay2    int64 `gorm:"default:0"`
	Pay3    int64 `gorm:"default:0"`
	Pay4    int64 `gorm:"default:0"`

	TotalDue int64 `gorm:"not null;default:0"`
	Balance  int64 `gorm:"not null;default:0"`

	Status      RentalStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	CompletedAt *time.Time
	Note        string

	Payments []Payment `gorm:"foreignKey:RentalID"`

	gorm.Model
}

func (r *Rental) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// RentalCharge collects the charge-side fields of a rental.
type RentalCharge struct {
	Days       int
	DailyPrice int64
	KmDiff     int64
	Cleaning   int64
	Hgs        int64
	Damage     int64
	Fuel       int64
}

// ManualPaymentSlots collects the five inline payment fields.
type ManualPaymentSlots struct {
	Upfront int64
	Pay1    int64
	Pay2    int64
	Pay3    int64
	Pay4    int64
}

func (s ManualPaymentSlots) Sum() int64 {
	return s.Upfront + s.Pay1 + s.Pay2 + s.Pay3 + s.Pay4
}

func (r *Rental) Charge() RentalCharge {
	return RentalCharge{
		Days:       r.Days,
		DailyPrice: r.DailyPrice,
		KmDiff:     r.KmDiff,
		Cleaning:   r.Cleaning,
		Hgs:        r.Hgs,
		Damage:     r.Damage,
		Fuel:       r.Fuel,
	}
}

func (r *Rental) ManualSlots() ManualPaymentSlots {
	return ManualPaymentSlots{
		Upfront: r.Upfront,
		Pay1:    r.Pay1,
		Pay2:    r.Pay2,
		Pay3:    r.Pay3,
		Pay4:    r.Pay4,
	}
}
