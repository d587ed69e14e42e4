// services/rental_calc.go
package services

import (
	"errors"

	"rentacar-backend/models"
)

var (
	ErrNotActive      = errors.New("rental is not active")
	ErrRentalDeleted  = errors.New("rental is deleted")
	ErrRentalNotFound = errors.New("rental not found")
)

// ComputeTotalDue sums a rental's charges. Inputs are already kuruş;
// decimal conversion happens at the API boundary (utils.ParseAmount),
// never here.
func ComputeTotalDue(c models.RentalCharge) int64 {
	return int64(c.Days)*c.DailyPrice + c.KmDiff + c.Cleaning + c.Hgs + c.Damage + c.Fuel
}

// ComputeBalance returns the amount still owed: total due minus the
// manual slots and the full payment ledger, clamped at zero. Overpayment
// never produces a negative balance; credit owed to the customer is not
// modelled.
func ComputeBalance(totalDue int64, slots models.ManualPaymentSlots, payments []models.Payment) int64 {
	var ledgerPaid int64
	for _, p := range payments {
		ledgerPaid += p.Amount
	}

	balance := totalDue - slots.Sum() - ledgerPaid
	if balance < 0 {
		balance = 0
	}
	return balance
}

// ComputeRentalAmounts is the single entry point for rental money math.
// Every mutation path goes through here; no handler derives TotalDue or
// Balance with its own arithmetic.
func ComputeRentalAmounts(charge models.RentalCharge, slots models.ManualPaymentSlots, payments []models.Payment) (totalDue, balance int64) {
	totalDue = ComputeTotalDue(charge)
	balance = ComputeBalance(totalDue, slots, payments)
	return totalDue, balance
}
