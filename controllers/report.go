// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"rentacar-backend/config"
	"rentacar-backend/models"
	"rentacar-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions. Reports only read the
// persisted TotalDue/Balance and payment rows; the reconciler is the one
// place that computes them.
type ReportController struct{}

// FinanceSummary represents the financial report data. All amounts are
// kuruş; Display fields are formatted for the UI.
type FinanceSummary struct {
	CurrentMonthRevenue int64             `json:"currentMonthRevenue"`
	MonthGrowth         float64           `json:"monthGrowth"`
	CurrentYearRevenue  int64             `json:"currentYearRevenue"`
	YearGrowth          float64           `json:"yearGrowth"`
	TotalCollected      int64             `json:"totalCollected"`
	TotalOutstanding    int64             `json:"totalOutstanding"`
	OutstandingDisplay  string            `json:"outstandingDisplay"`
	MethodBreakdown     []MethodSummary   `json:"methodBreakdown"`
	TopVehicles         []VehicleSummary  `json:"topVehicles"`
	TopCustomers        []CustomerSummary `json:"topCustomers"`
	QuickStats          QuickStatistics   `json:"quickStats"`
}

type MethodSummary struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
	Amount int64  `json:"amount"`
}

type VehicleSummary struct {
	Plate   string `json:"plate"`
	Rentals int    `json:"rentals"`
	Revenue int64  `json:"revenue"`
}

type CustomerSummary struct {
	Name    string `json:"name"`
	Rentals int    `json:"rentals"`
	Spent   int64  `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers  int   `json:"totalCustomers"`
	TotalRentals    int   `json:"totalRentals"`
	ActiveRentals   int   `json:"activeRentals"`
	AvgRentalValue  int64 `json:"avgRentalValue"`
	OpenDebtRentals int   `json:"openDebtRentals"`
}

// GetReportAnalytics returns the complete financial report
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	// Revenue = invoiced amounts (total_due) per period, deleted rentals
	// included for historical reporting
	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	totalCollected, totalOutstanding, err := rc.getCollectedAndOutstanding()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get collection totals")
		return
	}

	methodBreakdown, err := rc.getMethodBreakdown(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get method breakdown")
		return
	}

	topVehicles, err := rc.getTopVehicles(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top vehicles")
		return
	}

	topCustomers, err := rc.getTopCustomers(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := FinanceSummary{
		CurrentMonthRevenue: currentMonthRevenue,
		MonthGrowth:         rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentYearRevenue:  currentYearRevenue,
		YearGrowth:          rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TotalCollected:      totalCollected,
		TotalOutstanding:    totalOutstanding,
		OutstandingDisplay:  utils.FormatDisplay(totalOutstanding),
		MethodBreakdown:     methodBreakdown,
		TopVehicles:         topVehicles,
		TopCustomers:        topCustomers,
		QuickStats:          quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(start, end time.Time) (int64, error) {
	var total int64
	err := config.DB.Unscoped().Model(&models.Rental{}).
		Where("start_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_due), 0)").
		Scan(&total).Error
	return total, err
}

// getCollectedAndOutstanding re-derives collection totals from the
// persisted fields: collected = total_due - balance, outstanding =
// balance. Soft-deleted rentals are excluded from open debt.
func (rc *ReportController) getCollectedAndOutstanding() (int64, int64, error) {
	var collected int64
	if err := config.DB.Model(&models.Rental{}).
		Select("COALESCE(SUM(total_due - balance), 0)").
		Scan(&collected).Error; err != nil {
		return 0, 0, err
	}

	var outstanding int64
	if err := config.DB.Model(&models.Rental{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&outstanding).Error; err != nil {
		return 0, 0, err
	}

	return collected, outstanding, nil
}

func (rc *ReportController) getMethodBreakdown(start, end time.Time) ([]MethodSummary, error) {
	var methods []MethodSummary

	err := config.DB.Table("payments").
		Select("payments.method, COUNT(payments.id) as count, SUM(payments.amount) as amount").
		Where("payments.paid_at BETWEEN ? AND ? AND payments.deleted_at IS NULL", start, end).
		Group("payments.method").
		Order("amount DESC").
		Scan(&methods).Error

	return methods, err
}

func (rc *ReportController) getTopVehicles(start, end time.Time, limit int) ([]VehicleSummary, error) {
	var vehicles []VehicleSummary

	err := config.DB.Table("rentals").
		Select("vehicles.plate, COUNT(rentals.id) as rentals, SUM(rentals.total_due) as revenue").
		Joins("JOIN vehicles ON vehicles.id = rentals.vehicle_id").
		Where("rentals.start_date BETWEEN ? AND ? AND rentals.deleted_at IS NULL AND vehicles.deleted_at IS NULL", start, end).
		Group("vehicles.plate").
		Order("revenue DESC").
		Limit(limit).
		Scan(&vehicles).Error

	return vehicles, err
}

func (rc *ReportController) getTopCustomers(start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("rentals").
		Select("customers.name, COUNT(rentals.id) as rentals, SUM(rentals.total_due) as spent").
		Joins("JOIN customers ON customers.id = rentals.customer_id").
		Where("rentals.start_date BETWEEN ? AND ? AND rentals.deleted_at IS NULL AND customers.deleted_at IS NULL", start, end).
		Group("customers.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	// Total Customers
	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	// Total Rentals
	var totalRentals int64
	if err := config.DB.Model(&models.Rental{}).
		Count(&totalRentals).Error; err != nil {
		return stats, err
	}
	stats.TotalRentals = int(totalRentals)

	// Active Rentals
	var activeRentals int64
	if err := config.DB.Model(&models.Rental{}).
		Where("status = ?", models.RentalActive).
		Count(&activeRentals).Error; err != nil {
		return stats, err
	}
	stats.ActiveRentals = int(activeRentals)

	// Rentals with open debt
	var openDebt int64
	if err := config.DB.Model(&models.Rental{}).
		Where("balance > 0").
		Count(&openDebt).Error; err != nil {
		return stats, err
	}
	stats.OpenDebtRentals = int(openDebt)

	// Average Rental Value
	var totalRevenue int64
	if err := config.DB.Model(&models.Rental{}).
		Select("COALESCE(SUM(total_due), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}

	if stats.TotalRentals > 0 {
		stats.AvgRentalValue = totalRevenue / int64(stats.TotalRentals)
	}

	return stats, nil
}

func (rc *ReportController) calculateGrowthPercentage(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (float64(current-previous) / float64(previous)) * 100
}
