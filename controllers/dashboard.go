package controllers

import (
	"fmt"
	"net/http"
	"time"

	"rentacar-backend/config"
	"rentacar-backend/models"
	"rentacar-backend/utils"

	"github.com/gin-gonic/gin"
)

type DueBackRow struct {
	Plate    string `json:"plate"`
	Customer string `json:"customer"`
	DueDate  string `json:"dueDate"` // e.g. "Today", "Tomorrow", "3 days"
}

type OpenDebtRow struct {
	RentalNo string `json:"rentalNo"`
	Customer string `json:"customer"`
	Balance  int64  `json:"balance"`
	Display  string `json:"display"`
}

func GetDashboardOverview(c *gin.Context) {
	// Fleet counts
	var totalVehicles, rentedVehicles int64
	config.DB.Model(&models.Vehicle{}).Where("is_active = true").Count(&totalVehicles)
	config.DB.Model(&models.Vehicle{}).Where("status = ?", models.VehicleRented).Count(&rentedVehicles)

	// Total Customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	// Active Rentals
	var activeRentals int64
	config.DB.Model(&models.Rental{}).Where("status = ?", models.RentalActive).Count(&activeRentals)

	// This Month's Revenue (invoiced) and Open Debt — both read persisted
	// fields, never recomputed here
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue int64
	config.DB.Model(&models.Rental{}).
		Where("start_date >= ?", firstOfMonth).
		Select("COALESCE(SUM(total_due), 0)").Scan(&monthlyRevenue)

	var openDebt int64
	config.DB.Model(&models.Rental{}).
		Select("COALESCE(SUM(balance), 0)").Scan(&openDebt)

	// Vehicles due back in the next 7 days
	var dueBack []DueBackRow
	type dueRow struct {
		Plate   string
		Name    string
		EndDate time.Time
	}
	var dueRows []dueRow
	config.DB.Raw(`
        SELECT v.plate, c.name, r.end_date
        FROM rentals r
        JOIN vehicles v ON v.id = r.vehicle_id
        JOIN customers c ON c.id = r.customer_id
        WHERE r.status = ? AND r.deleted_at IS NULL
        ORDER BY r.end_date
    `, models.RentalActive).Scan(&dueRows)

	today := utils.BeginningOfDay(now)
	for _, r := range dueRows {
		daysUntil := int(utils.BeginningOfDay(r.EndDate).Sub(today).Hours() / 24)
		if daysUntil < 0 || daysUntil > 6 {
			continue
		}
		var label string
		switch daysUntil {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", daysUntil)
		}
		dueBack = append(dueBack, DueBackRow{
			Plate:    r.Plate,
			Customer: r.Name,
			DueDate:  label,
		})
		if len(dueBack) >= 7 {
			break
		}
	}

	// Largest open balances
	var debtRows []OpenDebtRow
	config.DB.Raw(`
        SELECT r.rental_no, c.name AS customer, r.balance
        FROM rentals r
        JOIN customers c ON c.id = r.customer_id
        WHERE r.balance > 0 AND r.deleted_at IS NULL
        ORDER BY r.balance DESC
        LIMIT 5
    `).Scan(&debtRows)
	for i := range debtRows {
		debtRows[i].Display = utils.FormatDisplay(debtRows[i].Balance)
	}

	response := gin.H{
		"totalVehicles":  totalVehicles,
		"rentedVehicles": rentedVehicles,
		"idleVehicles":   totalVehicles - rentedVehicles,
		"totalCustomers": totalCustomers,
		"activeRentals":  activeRentals,
		"monthlyRevenue": monthlyRevenue,
		"openDebt":       openDebt,
		"dueBack":        dueBack,
		"topOpenDebt":    debtRows,
	}

	c.JSON(http.StatusOK, response)
}
