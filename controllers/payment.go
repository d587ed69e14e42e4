// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"rentacar-backend/config"
	"rentacar-backend/models"
	"rentacar-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePaymentInput defines the expected JSON structure for recording a
// ledger payment. Amount accepts a TL number or a formatted string.
type CreatePaymentInput struct {
	Amount utils.Amount         `json:"amount" binding:"required"`
	Method models.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH TRANSFER CARD"`
	PaidAt *time.Time           `json:"paidAt"`
	Note   string               `json:"note"`
}

// UpdatePaymentInput defines the expected JSON structure for editing a payment
type UpdatePaymentInput struct {
	Amount *utils.Amount         `json:"amount"`
	Method *models.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH TRANSFER CARD"`
	PaidAt *time.Time            `json:"paidAt"`
	Note   *string               `json:"note"`
}

// CreatePayment records a payment against a rental and reconciles the
// balance in the same transaction
func CreatePayment(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Amount.Minor() <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	method := input.Method
	if method == "" {
		method = models.PaymentCash
	}
	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := models.Payment{
		ID:       uuid.New(),
		RentalID: rentalUUID,
		Amount:   input.Amount.Minor(),
		Method:   method,
		PaidAt:   paidAt,
		Note:     input.Note,
	}

	rental, err := reconciler().AddPayment(&payment)
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment": payment,
		"balance": rental.Balance,
	})
}

// GetPayments lists a rental's payment ledger ordered by payment time
func GetPayments(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("rental_id = ?", rentalUUID).
		Order("paid_at").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// UpdatePayment edits a payment's amount, method or date and reconciles
func UpdatePayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Amount != nil && input.Amount.Minor() <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	rental, err := reconciler().UpdatePayment(paymentUUID, func(p *models.Payment) {
		if input.Amount != nil {
			p.Amount = input.Amount.Minor()
		}
		if input.Method != nil {
			p.Method = *input.Method
		}
		if input.PaidAt != nil {
			p.PaidAt = *input.PaidAt
		}
		if input.Note != nil {
			p.Note = *input.Note
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
			return
		}
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment updated",
		"balance": rental.Balance,
	})
}

// DeletePayment removes a payment; the balance is recomputed from the
// remaining ledger, never adjusted incrementally
func DeletePayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	rental, err := reconciler().DeletePayment(paymentUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
			return
		}
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment deleted successfully",
		"balance": rental.Balance,
	})
}
