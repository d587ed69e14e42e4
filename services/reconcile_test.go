package services

import (
	"testing"
	"time"

	"rentacar-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReconcilerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Vehicle{},
		&models.Reservation{},
		&models.Rental{},
		&models.Payment{},
	)
	require.NoError(t, err)

	return db
}

// seedRental creates a vehicle, a customer and the standard test rental:
// 8 days at 150,00 TL/day plus addons = 1.240,00 TL due, 500,00 TL paid
// upfront, 740,00 TL open.
func seedRental(t *testing.T, db *gorm.DB) (*Reconciler, *models.Rental) {
	vehicle := models.Vehicle{
		ID:        uuid.New(),
		Plate:     "34 ABC 123",
		Brand:     "Renault",
		ModelName: "Clio",
		Status:    models.VehicleIdle,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&vehicle).Error)

	customer := models.Customer{
		ID:       uuid.New(),
		Name:     "Ahmet Yilmaz",
		Phone:    "+905551112233",
		IsActive: true,
	}
	require.NoError(t, db.Create(&customer).Error)

	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	rental := models.Rental{
		ID:         uuid.New(),
		RentalNo:   "RNT-20250610-TEST01",
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 7),
		Days:       8,
		DailyPrice: 15000,
		KmDiff:     2500,
		Cleaning:   1000,
		Hgs:        500,
		Upfront:    50000,
	}

	r := NewReconciler(db)
	require.NoError(t, r.CreateRental(&rental))
	return r, &rental
}

func TestReconcilerCreateRental(t *testing.T) {
	db := setupReconcilerTestDB(t)
	_, rental := seedRental(t, db)

	var saved models.Rental
	require.NoError(t, db.First(&saved, "id = ?", rental.ID).Error)
	assert.Equal(t, int64(124000), saved.TotalDue)
	assert.Equal(t, int64(74000), saved.Balance)
	assert.Equal(t, models.RentalActive, saved.Status)

	// Vehicle is occupied
	var vehicle models.Vehicle
	require.NoError(t, db.First(&vehicle, "id = ?", rental.VehicleID).Error)
	assert.Equal(t, models.VehicleRented, vehicle.Status)

	// Customer stats are bumped
	var customer models.Customer
	require.NoError(t, db.First(&customer, "id = ?", rental.CustomerID).Error)
	assert.Equal(t, 1, customer.TotalRentals)
	assert.Equal(t, int64(124000), customer.TotalSpent)
}

func TestReconcilerPaymentLifecycle(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	// Ledger payment settles the open balance
	first := models.Payment{ID: uuid.New(), RentalID: rental.ID, Amount: 74000, PaidAt: time.Now(), Method: models.PaymentTransfer}
	updated, err := r.AddPayment(&first)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Balance)

	// Overpayment clamps to zero, never negative
	second := models.Payment{ID: uuid.New(), RentalID: rental.ID, Amount: 5000, PaidAt: time.Now(), Method: models.PaymentCash}
	updated, err = r.AddPayment(&second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Balance)

	// Deleting a payment re-derives the balance from the remaining
	// ledger rather than adding the amount back
	updated, err = r.DeletePayment(first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(69000), updated.Balance) // 124000 - 50000 - 5000

	// Editing the remaining payment reconciles again
	updated, err = r.UpdatePayment(second.ID, func(p *models.Payment) {
		p.Amount = 74000
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.Balance)
}

func TestReconcilerIdempotent(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	firstRun, err := r.Reconcile(rental.ID)
	require.NoError(t, err)
	secondRun, err := r.Reconcile(rental.ID)
	require.NoError(t, err)

	assert.Equal(t, firstRun.Balance, secondRun.Balance)
	assert.Equal(t, firstRun.TotalDue, secondRun.TotalDue)
	assert.Equal(t, int64(74000), secondRun.Balance)
}

func TestReconcilerUpdateRental(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	updated, err := r.UpdateRental(rental.ID, func(ren *models.Rental) {
		ren.DailyPrice = 20000
		ren.Pay1 = 10000
	})
	require.NoError(t, err)

	// 8*20000 + 2500 + 1000 + 500 = 164000; paid 50000 + 10000
	assert.Equal(t, int64(164000), updated.TotalDue)
	assert.Equal(t, int64(104000), updated.Balance)
}

func TestReconcilerTransitions(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	returned, err := r.ReturnRental(rental.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentalReturned, returned.Status)
	// Balance survives the transition
	assert.Equal(t, int64(74000), returned.Balance)

	// Vehicle is freed
	var vehicle models.Vehicle
	require.NoError(t, db.First(&vehicle, "id = ?", rental.VehicleID).Error)
	assert.Equal(t, models.VehicleIdle, vehicle.Status)

	// Only ACTIVE rentals can transition
	_, err = r.ReturnRental(rental.ID)
	assert.ErrorIs(t, err, ErrNotActive)
	_, err = r.CompleteRental(rental.ID)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestReconcilerComplete(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	completed, err := r.CompleteRental(rental.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentalCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, int64(74000), completed.Balance)
}

func TestReconcilerSoftDelete(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r, rental := seedRental(t, db)

	payment := models.Payment{ID: uuid.New(), RentalID: rental.ID, Amount: 10000, PaidAt: time.Now(), Method: models.PaymentCash}
	_, err := r.AddPayment(&payment)
	require.NoError(t, err)

	require.NoError(t, r.DeleteRental(rental.ID))

	// Gone from default scope, still present unscoped with its status
	var count int64
	db.Model(&models.Rental{}).Where("id = ?", rental.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var historical models.Rental
	require.NoError(t, db.Unscoped().First(&historical, "id = ?", rental.ID).Error)
	assert.Equal(t, models.RentalActive, historical.Status)

	// Payments went with it
	db.Model(&models.Payment{}).Where("rental_id = ?", rental.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Vehicle is freed
	var vehicle models.Vehicle
	require.NoError(t, db.First(&vehicle, "id = ?", rental.VehicleID).Error)
	assert.Equal(t, models.VehicleIdle, vehicle.Status)

	// Deleted rentals are immutable to reconciliation
	late := models.Payment{ID: uuid.New(), RentalID: rental.ID, Amount: 5000, PaidAt: time.Now(), Method: models.PaymentCash}
	_, err = r.AddPayment(&late)
	assert.ErrorIs(t, err, ErrRentalDeleted)

	_, err = r.Reconcile(rental.ID)
	assert.ErrorIs(t, err, ErrRentalDeleted)
}

func TestReconcilerRentalNotFound(t *testing.T) {
	db := setupReconcilerTestDB(t)
	r := NewReconciler(db)

	_, err := r.Reconcile(uuid.New())
	assert.ErrorIs(t, err, ErrRentalNotFound)
}
