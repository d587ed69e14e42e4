// controllers/rental.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"rentacar-backend/config"
	"rentacar-backend/models"
	"rentacar-backend/services"
	"rentacar-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reconciler is the single implementation of the balance math; every
// money mutation in this package goes through it.
func reconciler() *services.Reconciler {
	return services.NewReconciler(config.DB)
}

func respondRentalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRentalNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
	case errors.Is(err, services.ErrRentalDeleted):
		utils.RespondWithError(c, http.StatusConflict, "Rental is deleted")
	case errors.Is(err, services.ErrNotActive):
		utils.RespondWithError(c, http.StatusConflict, "Rental is not active")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// CreateRentalInput defines the expected JSON structure for creating a rental.
// Money fields accept either a number in TL or a formatted string
// ("1.250,50"); they are stored as kuruş.
type CreateRentalInput struct {
	VehicleID  uuid.UUID `json:"vehicleId" binding:"required"`
	CustomerID uuid.UUID `json:"customerId" binding:"required"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`

	Days       *int         `json:"days"` // computed from the dates when omitted
	DailyPrice utils.Amount `json:"dailyPrice" binding:"required"`
	KmDiff     utils.Amount `json:"kmDiff"`
	Cleaning   utils.Amount `json:"cleaning"`
	Hgs        utils.Amount `json:"hgs"`
	Damage     utils.Amount `json:"damage"`
	Fuel       utils.Amount `json:"fuel"`

	Upfront utils.Amount `json:"upfront"`
	Pay1    utils.Amount `json:"pay1"`
	Pay2    utils.Amount `json:"pay2"`
	Pay3    utils.Amount `json:"pay3"`
	Pay4    utils.Amount `json:"pay4"`

	Note string `json:"note"`
}

// UpdateRentalInput defines the expected JSON structure for updating a rental
type UpdateRentalInput struct {
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`

	Days       *int          `json:"days"`
	DailyPrice *utils.Amount `json:"dailyPrice"`
	KmDiff     *utils.Amount `json:"kmDiff"`
	Cleaning   *utils.Amount `json:"cleaning"`
	Hgs        *utils.Amount `json:"hgs"`
	Damage     *utils.Amount `json:"damage"`
	Fuel       *utils.Amount `json:"fuel"`

	Upfront *utils.Amount `json:"upfront"`
	Pay1    *utils.Amount `json:"pay1"`
	Pay2    *utils.Amount `json:"pay2"`
	Pay3    *utils.Amount `json:"pay3"`
	Pay4    *utils.Amount `json:"pay4"`

	Note *string `json:"note"`
}

// CreateRental opens a new rental on an idle vehicle
func CreateRental(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate vehicle exists and is available
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", input.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if vehicle.Status != models.VehicleIdle || !vehicle.IsActive {
		utils.RespondWithError(c, http.StatusConflict, "Vehicle is not available")
		return
	}

	// Validate customer exists
	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Day count comes from the dates unless the caller overrides it
	days, err := utils.DaysBetween(input.StartDate, input.EndDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date range")
		return
	}
	if input.Days != nil {
		if *input.Days < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Days must be at least 1")
			return
		}
		days = *input.Days
	}

	rental := models.Rental{
		ID:              uuid.New(),
		VehicleID:       input.VehicleID,
		CustomerID:      input.CustomerID,
		CreatedByUserID: userID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Days:            days,
		DailyPrice:      input.DailyPrice.Minor(),
		KmDiff:          input.KmDiff.Minor(),
		Cleaning:        input.Cleaning.Minor(),
		Hgs:             input.Hgs.Minor(),
		Damage:          input.Damage.Minor(),
		Fuel:            input.Fuel.Minor(),
		Upfront:         input.Upfront.Minor(),
		Pay1:            input.Pay1.Minor(),
		Pay2:            input.Pay2.Minor(),
		Pay3:            input.Pay3.Minor(),
		Pay4:            input.Pay4.Minor(),
		Note:            input.Note,
	}

	rental.RentalNo = "RNT-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)

	if err := reconciler().CreateRental(&rental); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create rental")
		return
	}

	c.JSON(http.StatusCreated, rental)
}

// GetRentals retrieves rentals, with optional status and open-debt filters
func GetRentals(c *gin.Context) {
	query := config.DB.Model(&models.Rental{}).Preload("Payments")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("debt") == "open" {
		query = query.Where("balance > 0")
	}

	var rentals []models.Rental
	if err := query.Order("start_date DESC").Find(&rentals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rentals")
		return
	}

	c.JSON(http.StatusOK, rentals)
}

// GetRental retrieves a specific rental with its payment ledger
func GetRental(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var rental models.Rental
	if err := config.DB.Preload("Payments").First(&rental, "id = ?", rentalUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rental not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, rental)
}

// UpdateRental edits a rental's charges, dates or manual payment slots.
// The balance is reconciled inside the same transaction as the edit.
func UpdateRental(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	var input UpdateRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Days != nil && *input.Days < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Days must be at least 1")
		return
	}

	rental, err := reconciler().UpdateRental(rentalUUID, func(r *models.Rental) {
		if input.StartDate != nil {
			r.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			r.EndDate = *input.EndDate
		}

		// A date change re-derives the day count unless the caller pins it
		if input.Days != nil {
			r.Days = *input.Days
		} else if input.StartDate != nil || input.EndDate != nil {
			if days, err := utils.DaysBetween(r.StartDate, r.EndDate); err == nil {
				r.Days = days
			}
		}

		if input.DailyPrice != nil {
			r.DailyPrice = input.DailyPrice.Minor()
		}
		if input.KmDiff != nil {
			r.KmDiff = input.KmDiff.Minor()
		}
		if input.Cleaning != nil {
			r.Cleaning = input.Cleaning.Minor()
		}
		if input.Hgs != nil {
			r.Hgs = input.Hgs.Minor()
		}
		if input.Damage != nil {
			r.Damage = input.Damage.Minor()
		}
		if input.Fuel != nil {
			r.Fuel = input.Fuel.Minor()
		}

		if input.Upfront != nil {
			r.Upfront = input.Upfront.Minor()
		}
		if input.Pay1 != nil {
			r.Pay1 = input.Pay1.Minor()
		}
		if input.Pay2 != nil {
			r.Pay2 = input.Pay2.Minor()
		}
		if input.Pay3 != nil {
			r.Pay3 = input.Pay3.Minor()
		}
		if input.Pay4 != nil {
			r.Pay4 = input.Pay4.Minor()
		}

		if input.Note != nil {
			r.Note = *input.Note
		}
	})
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, rental)
}

// ReturnRental marks an active rental's vehicle as returned
func ReturnRental(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	rental, err := reconciler().ReturnRental(rentalUUID)
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, rental)
}

// CompleteRental closes out an active rental, stamping completion time
func CompleteRental(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	rental, err := reconciler().CompleteRental(rentalUUID)
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, rental)
}

// CancelRental cancels an active rental
func CancelRental(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	rental, err := reconciler().CancelRental(rentalUUID)
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, rental)
}

// DeleteRental soft deletes a rental and its payments
func DeleteRental(c *gin.Context) {
	rentalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid rental ID format")
		return
	}

	if err := reconciler().DeleteRental(rentalUUID); err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rental deleted successfully"})
}
