// services/reconcile.go
package services

import (
	"errors"
	"time"

	"rentacar-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reconciler owns every mutation that touches a rental's charges or
// payments. Each operation runs in one transaction that applies the
// mutation, reloads the rental's charges, manual slots and full payment
// ledger, recomputes TotalDue/Balance via ComputeRentalAmounts and
// persists the result. No caller commits a money mutation without a
// freshly computed balance in the same transaction.
type Reconciler struct {
	db *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db}
}

// lockRental loads the rental with a row lock so concurrent payments on
// the same rental serialize. Soft-deleted rentals are immutable and
// surface ErrRentalDeleted.
func (r *Reconciler) lockRental(tx *gorm.DB, id uuid.UUID) (*models.Rental, error) {
	q := tx
	// SQLite (used in tests) serializes writers at the database level
	// and rejects FOR UPDATE
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rental models.Rental
	if err := q.First(&rental, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var count int64
			tx.Unscoped().Model(&models.Rental{}).Where("id = ?", id).Count(&count)
			if count > 0 {
				return nil, ErrRentalDeleted
			}
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return &rental, nil
}

// reconcile recomputes and persists the derived fields from the current
// ledger. Always derived fresh, never incrementally adjusted.
func (r *Reconciler) reconcile(tx *gorm.DB, rental *models.Rental) error {
	var payments []models.Payment
	if err := tx.Where("rental_id = ?", rental.ID).Find(&payments).Error; err != nil {
		return err
	}

	totalDue, balance := ComputeRentalAmounts(rental.Charge(), rental.ManualSlots(), payments)
	return tx.Model(rental).Updates(map[string]interface{}{
		"total_due": totalDue,
		"balance":   balance,
	}).Error
}

// CreateRental persists a new rental with computed amounts, marks the
// vehicle rented and bumps the customer's stats.
func (r *Reconciler) CreateRental(rental *models.Rental) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		rental.Status = models.RentalActive
		rental.TotalDue, rental.Balance = ComputeRentalAmounts(rental.Charge(), rental.ManualSlots(), nil)

		if err := tx.Create(rental).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Vehicle{}).Where("id = ?", rental.VehicleID).
			Update("status", models.VehicleRented).Error; err != nil {
			return err
		}

		return tx.Model(&models.Customer{}).Where("id = ?", rental.CustomerID).
			Updates(map[string]interface{}{
				"total_rentals": gorm.Expr("total_rentals + ?", 1),
				"total_spent":   gorm.Expr("total_spent + ?", rental.TotalDue),
				"last_rental":   rental.StartDate,
			}).Error
	})
}

// UpdateRental applies mutate to the locked rental (charges, dates,
// manual slots, note) and reconciles in the same transaction.
func (r *Reconciler) UpdateRental(id uuid.UUID, mutate func(*models.Rental)) (*models.Rental, error) {
	var rental *models.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rental, err = r.lockRental(tx, id)
		if err != nil {
			return err
		}

		mutate(rental)
		if err := tx.Save(rental).Error; err != nil {
			return err
		}
		return r.reconcile(tx, rental)
	})
	return rental, err
}

// AddPayment appends a ledger payment and reconciles the owning rental.
func (r *Reconciler) AddPayment(payment *models.Payment) (*models.Rental, error) {
	var rental *models.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rental, err = r.lockRental(tx, payment.RentalID)
		if err != nil {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return r.reconcile(tx, rental)
	})
	return rental, err
}

// UpdatePayment applies mutate to an existing ledger payment and
// reconciles the owning rental.
func (r *Reconciler) UpdatePayment(id uuid.UUID, mutate func(*models.Payment)) (*models.Rental, error) {
	var rental *models.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", id).Error; err != nil {
			return err
		}

		var err error
		rental, err = r.lockRental(tx, payment.RentalID)
		if err != nil {
			return err
		}

		mutate(&payment)
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return r.reconcile(tx, rental)
	})
	return rental, err
}

// DeletePayment removes a ledger payment and reconciles; the balance
// climbs back because it is recomputed from the remaining ledger, not
// incrementally adjusted.
func (r *Reconciler) DeletePayment(id uuid.UUID) (*models.Rental, error) {
	var rental *models.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", id).Error; err != nil {
			return err
		}

		var err error
		rental, err = r.lockRental(tx, payment.RentalID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}
		return r.reconcile(tx, rental)
	})
	return rental, err
}

// ReturnRental moves ACTIVE -> RETURNED, frees the vehicle and
// reconciles from the ledger at the moment of transition.
func (r *Reconciler) ReturnRental(id uuid.UUID) (*models.Rental, error) {
	return r.transition(id, models.RentalReturned, false)
}

// CompleteRental moves ACTIVE -> COMPLETED and stamps CompletedAt. The
// balance is preserved, not zeroed, for historical audit.
func (r *Reconciler) CompleteRental(id uuid.UUID) (*models.Rental, error) {
	return r.transition(id, models.RentalCompleted, true)
}

// CancelRental moves ACTIVE -> CANCELLED and frees the vehicle.
func (r *Reconciler) CancelRental(id uuid.UUID) (*models.Rental, error) {
	return r.transition(id, models.RentalCancelled, false)
}

func (r *Reconciler) transition(id uuid.UUID, to models.RentalStatus, stampCompleted bool) (*models.Rental, error) {
	var rental *models.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rental, err = r.lockRental(tx, id)
		if err != nil {
			return err
		}

		if rental.Status != models.RentalActive {
			return ErrNotActive
		}

		rental.Status = to
		if stampCompleted {
			now := time.Now()
			rental.CompletedAt = &now
		}
		if err := tx.Save(rental).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Vehicle{}).Where("id = ?", rental.VehicleID).
			Update("status", models.VehicleIdle).Error; err != nil {
			return err
		}
		return r.reconcile(tx, rental)
	})
	return rental, err
}

// DeleteRental soft-deletes a rental and its payments. A deleted rental
// keeps its last status for historical reporting but is excluded from
// open-debt views, and further reconciliation is refused. The vehicle is
// freed if the rental was still occupying it.
func (r *Reconciler) DeleteRental(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		rental, err := r.lockRental(tx, id)
		if err != nil {
			return err
		}

		if rental.Status == models.RentalActive {
			if err := tx.Model(&models.Vehicle{}).Where("id = ?", rental.VehicleID).
				Update("status", models.VehicleIdle).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("rental_id = ?", rental.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(rental).Error; err != nil {
			return err
		}

		return tx.Model(&models.Customer{}).Where("id = ?", rental.CustomerID).
			Updates(map[string]interface{}{
				"total_rentals": gorm.Expr("total_rentals - ?", 1),
				"total_spent":   gorm.Expr("total_spent - ?", rental.TotalDue),
			}).Error
	})
}

// Reconcile re-runs the protocol with no other mutation. Running it twice
// in a row persists the same balance both times.
func (r *Reconciler) Reconcile(id uuid.UUID) (*models.Rental, error) {
	var rental *models.Rental
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		rental, err = r.lockRental(tx, id)
		if err != nil {
			return err
		}
		return r.reconcile(tx, rental)
	})
	return rental, err
}
