// controllers/vehicle.go
package controllers

import (
	"errors"
	"net/http"

	"rentacar-backend/config"
	"rentacar-backend/models"
	"rentacar-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateVehicleInput defines the expected JSON structure for creating a vehicle
type CreateVehicleInput struct {
	Plate string `json:"plate" binding:"required"`
	Brand string `json:"brand" binding:"required"`
	Model string `json:"model" binding:"required"`
	Year  int    `json:"year" binding:"omitempty,min=1950"`
	Km    int    `json:"km" binding:"min=0"`
	Notes string `json:"notes"`
}

// UpdateVehicleInput defines the expected JSON structure for updating a vehicle
type UpdateVehicleInput struct {
	Plate    *string               `json:"plate"`
	Brand    *string               `json:"brand"`
	Model    *string               `json:"model"`
	Year     *int                  `json:"year"`
	Km       *int                  `json:"km"`
	Status   *models.VehicleStatus `json:"status" binding:"omitempty,oneof=IDLE RENTED SERVICE"`
	Notes    *string               `json:"notes"`
	IsActive *bool                 `json:"isActive"`
}

// CreateVehicle adds a vehicle to the fleet
func CreateVehicle(c *gin.Context) {
	var input CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	plate := utils.NormalizePlate(input.Plate)
	if !utils.ValidatePlate(plate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid plate format")
		return
	}

	// Check if plate already exists
	var existingVehicle models.Vehicle
	if err := config.DB.Where("plate = ?", plate).First(&existingVehicle).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Vehicle with this plate already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	vehicle := models.Vehicle{
		ID:        uuid.New(),
		Plate:     plate,
		Brand:     input.Brand,
		ModelName: input.Model,
		Year:      input.Year,
		Km:        input.Km,
		Status:    models.VehicleIdle,
		Notes:     input.Notes,
		IsActive:  true,
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles retrieves the fleet, optionally filtered by status
func GetVehicles(c *gin.Context) {
	query := config.DB.Model(&models.Vehicle{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var vehicles []models.Vehicle
	if err := query.Order("plate").Find(&vehicles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func GetVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.Preload("Rentals").First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle updates an existing vehicle
func UpdateVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var input UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Plate != nil {
		plate := utils.NormalizePlate(*input.Plate)
		if !utils.ValidatePlate(plate) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid plate format")
			return
		}
		vehicle.Plate = plate
	}
	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.ModelName = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Km != nil {
		vehicle.Km = *input.Km
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}
	if input.Notes != nil {
		vehicle.Notes = *input.Notes
	}
	if input.IsActive != nil {
		vehicle.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle soft deletes a vehicle; refused while it is out on a rental
func DeleteVehicle(c *gin.Context) {
	vehicleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, "id = ?", vehicleUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if vehicle.Status == models.VehicleRented {
		utils.RespondWithError(c, http.StatusConflict, "Vehicle is currently rented")
		return
	}

	if err := config.DB.Delete(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
