package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCard     PaymentMethod = "CARD"
)

// Payment is a ledger entry owned by exactly one Rental. Amount is in
// kuruş, same unit as every other monetary field.
type Payment struct {
	ID       uuid.UUID     `gorm:"type:uuid;primary_key"`
	RentalID uuid.UUID     `gorm:"type:uuid;index;not null"`
	Amount   int64         `gorm:"not null"`
	PaidAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Method   PaymentMethod `gorm:"type:varchar(20);not null;default:'CASH'"`
	Note     string

	gorm.Model
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
