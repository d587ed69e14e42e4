// controllers/reservation.go
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

// CreateReservationInput defines the expected JSON structure
type CreateReservationInput struct {
	VehicleID  uuid.UUID    `json:"vehicleId" binding:"required"`
	CustomerID uuid.UUID    `json:"customerId" binding:"required"`
	StartDate  time.Time    `json:"startDate" binding:"required"`
	EndDate    time.Time    `json:"endDate" binding:"required"`
	Deposit    utils.Amount `json:"deposit"`
	Note       string       `json:"note"`
}

// UpdateReservationInput defines the expected JSON structure
type UpdateReservationInput struct {
	StartDate *time.Time                `json:"startDate"`
	EndDate   *time.Time                `json:"endDate"`
	Deposit   *utils.Amount             `json:"deposit"`
	Status    *models.ReservationStatus `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
	Note      *string                   `json:"note"`
}

// CreateReservation holds a vehicle for a customer
func CreateReservation(c *gin.Context) {
	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Reservations use the strict day-count rule: an inverted range is a
	// typo, not a one-day booking
	if _, err := utils.DaysBetweenStrict(input.StartDate, input.EndDate); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", input.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Reject overlap with an existing non-cancelled reservation
	var overlap int64
	config.DB.Model(&models.Reservation{}).
		Where("vehicle_id = ? AND status <> ? AND start_date <= ? AND end_date >= ?",
			input.VehicleID, models.ReservationCancelled, input.EndDate, input.StartDate).
		Count(&overlap)
	if overlap > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Vehicle already reserved for these dates")
		return
	}

	reservation := models.Reservation{
		ID:         uuid.New(),
		VehicleID:  input.VehicleID,
		CustomerID: input.CustomerID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Deposit:    input.Deposit.Minor(),
		Status:     models.ReservationPending,
		Note:       input.Note,
	}

	if err := config.DB.Create(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetReservations lists reservations, optionally filtered by status
func GetReservations(c *gin.Context) {
	query := config.DB.Model(&models.Reservation{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("start_date").Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation retrieves a specific reservation by ID
func GetReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, "id = ?", reservationUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation edits dates, deposit or status
func UpdateReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, "id = ?", reservationUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.StartDate != nil {
		reservation.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		reservation.EndDate = *input.EndDate
	}
	if input.StartDate != nil || input.EndDate != nil {
		if _, err := utils.DaysBetweenStrict(reservation.StartDate, reservation.EndDate); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
			return
		}
	}
	if input.Deposit != nil {
		reservation.Deposit = input.Deposit.Minor()
	}
	if input.Status != nil {
		reservation.Status = *input.Status
	}
	if input.Note != nil {
		reservation.Note = *input.Note
	}

	if err := config.DB.Save(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation soft deletes a reservation
func DeleteReservation(c *gin.Context) {
	reservationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	result := config.DB.Where("id = ?", reservationUUID).Delete(&models.Reservation{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reservation")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}
