package controllers

import (
	"net/http"
	"time"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/scheduling"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions. Revenue figures come
// from completed reservations only; a reservation's amount overrides the
// sum of its service lines when set.
type ReportController struct{}

type AnalyticsSummary struct {
	CurrentMonthRevenue   int64             `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue int64             `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    int64             `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopServices           []ServiceSummary  `json:"topServices"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

type CustomerSummary struct {
	Name   string `json:"name"`
	Visits int    `json:"visits"`
	Spent  int64  `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers    int     `json:"totalCustomers"`
	TotalReservations int     `json:"totalReservations"`
	CompletionRate    float64 `json:"completionRate"`
	AvgBookingValue   float64 `json:"avgBookingValue"`
}

// GetReportAnalytics returns the revenue and activity summary.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	loc := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, loc)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(salonUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	lastMonthRevenue, err := rc.getRevenue(salonUUID,
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(salonUUID,
		rc.getQuarterStart(now),
		rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}
	lastQuarterRevenue, err := rc.getRevenue(salonUUID,
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(salonUUID,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, loc),
		time.Date(currentYear, 12, 31, 0, 0, 0, 0, loc))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}
	lastYearRevenue, err := rc.getRevenue(salonUUID,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, loc),
		time.Date(currentYear-1, 12, 31, 0, 0, 0, 0, loc))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topServices, err := rc.getTopServices(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}
	topCustomers, err := rc.getTopCustomers(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}
	quickStats, err := rc.getQuickStatistics(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopServices:           topServices,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(salonID uuid.UUID, start, end time.Time) (int64, error) {
	var total int64
	err := config.DB.Raw(`
        SELECT COALESCE(SUM(COALESCE(r.amount, li.total)), 0)
        FROM reservations r
        LEFT JOIN (
            SELECT reservation_id, SUM(price) AS total
            FROM reservation_items
            GROUP BY reservation_id
        ) li ON li.reservation_id = r.id
        WHERE r.salon_id = ? AND r.status = ? AND r.date BETWEEN ? AND ?
        AND r.deleted_at IS NULL
    `, salonID, string(scheduling.StatusCompleted),
		start.Format("2006-01-02"), end.Format("2006-01-02")).
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
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

func (rc *ReportController) getTopServices(salonID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := config.DB.Table("reservation_items").
		Select("reservation_items.service_name as name, COUNT(*) as count, SUM(reservation_items.price) as revenue").
		Joins("JOIN reservations ON reservations.id = reservation_items.reservation_id").
		Where("reservations.salon_id = ? AND reservations.status = ? AND reservations.date BETWEEN ? AND ? AND reservations.deleted_at IS NULL",
			salonID, string(scheduling.StatusCompleted),
			start.Format("2006-01-02"), end.Format("2006-01-02")).
		Group("reservation_items.service_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopCustomers(salonID uuid.UUID, start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Raw(`
        SELECT r.customer_name as name, COUNT(r.id) as visits,
               COALESCE(SUM(COALESCE(r.amount, li.total)), 0) as spent
        FROM reservations r
        LEFT JOIN (
            SELECT reservation_id, SUM(price) AS total
            FROM reservation_items
            GROUP BY reservation_id
        ) li ON li.reservation_id = r.id
        WHERE r.salon_id = ? AND r.status = ? AND r.date BETWEEN ? AND ?
        AND r.deleted_at IS NULL
        GROUP BY r.customer_name
        ORDER BY spent DESC
        LIMIT ?
    `, salonID, string(scheduling.StatusCompleted),
		start.Format("2006-01-02"), end.Format("2006-01-02"), limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getQuickStatistics(salonID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Where("salon_id = ? AND deleted_at IS NULL", salonID).
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	var totalReservations int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("salon_id = ? AND deleted_at IS NULL", salonID).
		Count(&totalReservations).Error; err != nil {
		return stats, err
	}
	stats.TotalReservations = int(totalReservations)

	var completed int64
	if err := config.DB.Model(&models.Reservation{}).
		Where("salon_id = ? AND status = ? AND deleted_at IS NULL",
			salonID, string(scheduling.StatusCompleted)).
		Count(&completed).Error; err != nil {
		return stats, err
	}
	if stats.TotalReservations > 0 {
		stats.CompletionRate = float64(completed) / float64(stats.TotalReservations) * 100
	}

	var totalRevenue int64
	err := config.DB.Raw(`
        SELECT COALESCE(SUM(COALESCE(r.amount, li.total)), 0)
        FROM reservations r
        LEFT JOIN (
            SELECT reservation_id, SUM(price) AS total
            FROM reservation_items
            GROUP BY reservation_id
        ) li ON li.reservation_id = r.id
        WHERE r.salon_id = ? AND r.status = ? AND r.deleted_at IS NULL
    `, salonID, string(scheduling.StatusCompleted)).
		Scan(&totalRevenue).Error
	if err != nil {
		return stats, err
	}
	if completed > 0 {
		stats.AvgBookingValue = float64(totalRevenue) / float64(completed)
	}

	return stats, nil
}
