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

type DashboardOverview struct {
	TotalCustomers    int64                `json:"totalCustomers"`
	TodayByStatus     map[string]int64     `json:"todayByStatus"`
	MonthlyRevenue    int64                `json:"monthlyRevenue"`
	UpcomingToday     []scheduling.Booking `json:"upcomingToday"`
	UpcomingBirthdays []UpcomingEvent      `json:"upcomingBirthdays"`
}

type UpcomingEvent struct {
	Name string `json:"name"`
	Date string `json:"date"` // MM-DD
}

// GetDashboardOverview summarises today's book and the month's takings.
func GetDashboardOverview(c *gin.Context) {
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
	today := now.Format("2006-01-02")
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	lastOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, 1, -1).Format("2006-01-02")

	overview := DashboardOverview{
		TodayByStatus: map[string]int64{},
	}

	config.DB.Model(&models.Customer{}).
		Where("salon_id = ? AND deleted_at IS NULL", salonUUID).
		Count(&overview.TotalCustomers)

	// Today's appointments grouped by status.
	var statusRows []struct {
		Status string
		Count  int64
	}
	config.DB.Model(&models.Reservation{}).
		Select("status, COUNT(*) as count").
		Where("salon_id = ? AND date = ? AND deleted_at IS NULL", salonUUID, today).
		Group("status").
		Scan(&statusRows)
	for _, row := range statusRows {
		overview.TodayByStatus[row.Status] = row.Count
	}

	// This month's revenue from completed reservations. A reservation's
	// amount overrides the sum of its service lines when set.
	config.DB.Raw(`
        SELECT COALESCE(SUM(COALESCE(r.amount, li.total)), 0)
        FROM reservations r
        LEFT JOIN (
            SELECT reservation_id, SUM(price) AS total
            FROM reservation_items
            GROUP BY reservation_id
        ) li ON li.reservation_id = r.id
        WHERE r.salon_id = ? AND r.status = ? AND r.date BETWEEN ? AND ?
        AND r.deleted_at IS NULL
    `, salonUUID, string(scheduling.StatusCompleted), firstOfMonth, lastOfMonth).
		Scan(&overview.MonthlyRevenue)

	// Remaining appointments today, soonest first.
	var upcoming []models.Reservation
	config.DB.Preload("Items").
		Where("salon_id = ? AND date = ? AND status = ? AND start_time >= ?",
			salonUUID, today, string(scheduling.StatusScheduled), now.Format("15:04")).
		Order("start_time ASC").
		Limit(5).
		Find(&upcoming)
	overview.UpcomingToday = models.ToBookings(upcoming)

	// Upcoming birthdays until year end, year part ignored.
	config.DB.Raw(`
        SELECT name, TO_CHAR(birthday, 'MM-DD') as date FROM customers
        WHERE salon_id = ? AND deleted_at IS NULL AND birthday IS NOT NULL
        AND (
            (EXTRACT(MONTH FROM birthday) > ?) OR
            (EXTRACT(MONTH FROM birthday) = ? AND EXTRACT(DAY FROM birthday) >= ?)
        )
        ORDER BY EXTRACT(MONTH FROM birthday), EXTRACT(DAY FROM birthday)
        LIMIT 7
    `, salonUUID, int(now.Month()), int(now.Month()), now.Day()).
		Scan(&overview.UpcomingBirthdays)

	c.JSON(http.StatusOK, overview)
}
