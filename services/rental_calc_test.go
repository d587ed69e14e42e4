package services

import (
	"testing"

	"rentacar-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalDue(t *testing.T) {
	charge := models.RentalCharge{
		Days:       8,
		DailyPrice: 15000,
		KmDiff:     2500,
		Cleaning:   1000,
		Hgs:        500,
	}
	assert.Equal(t, int64(124000), ComputeTotalDue(charge))

	// Addon fields default to zero
	assert.Equal(t, int64(30000), ComputeTotalDue(models.RentalCharge{Days: 2, DailyPrice: 15000}))
}

func TestComputeBalance(t *testing.T) {
	slots := models.ManualPaymentSlots{Upfront: 50000}

	t.Run("manual slots reduce the balance", func(t *testing.T) {
		assert.Equal(t, int64(74000), ComputeBalance(124000, slots, nil))
	})

	t.Run("ledger payment reduces the balance by its amount", func(t *testing.T) {
		payments := []models.Payment{{Amount: 74000}}
		assert.Equal(t, int64(0), ComputeBalance(124000, slots, payments))
	})

	t.Run("overpayment clamps at zero", func(t *testing.T) {
		payments := []models.Payment{{Amount: 74000}, {Amount: 5000}}
		assert.Equal(t, int64(0), ComputeBalance(124000, slots, payments))
	})

	t.Run("all slots are summed", func(t *testing.T) {
		full := models.ManualPaymentSlots{Upfront: 100, Pay1: 200, Pay2: 300, Pay3: 400, Pay4: 500}
		assert.Equal(t, int64(1000), ComputeBalance(2500, full, nil))
	})

	t.Run("never negative", func(t *testing.T) {
		for _, due := range []int64{0, 1, 50000, 124000} {
			for _, paid := range []int64{0, 1, 74000, 200000} {
				got := ComputeBalance(due, models.ManualPaymentSlots{}, []models.Payment{{Amount: paid}})
				assert.GreaterOrEqual(t, got, int64(0))
			}
		}
	})
}

func TestComputeRentalAmounts(t *testing.T) {
	charge := models.RentalCharge{Days: 8, DailyPrice: 15000, KmDiff: 2500, Cleaning: 1000, Hgs: 500}
	slots := models.ManualPaymentSlots{Upfront: 50000}

	totalDue, balance := ComputeRentalAmounts(charge, slots, nil)
	assert.Equal(t, int64(124000), totalDue)
	assert.Equal(t, int64(74000), balance)

	t.Run("additivity", func(t *testing.T) {
		// A payment of a <= balance lowers the balance by exactly a
		payments := []models.Payment{{Amount: 20000}}
		_, next := ComputeRentalAmounts(charge, slots, payments)
		assert.Equal(t, balance-20000, next)
	})
}
