package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/scheduling"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStaffInput defines the expected JSON structure for adding a staff member
type CreateStaffInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UpdateStaffInput defines the expected JSON structure for updating a staff member
type UpdateStaffInput struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"`
	Status *string `json:"status" binding:"omitempty,oneof=active on-leave terminated"`
}

// WorkingHoursInput is one weekday's hours in a working-hours update.
type WorkingHoursInput struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	IsWorking  bool   `json:"isWorking"`
	ShiftStart string `json:"shiftStart"`
	ShiftEnd   string `json:"shiftEnd"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

// CreateStaff adds a staff member to the salon
func CreateStaff(c *gin.Context) {
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

	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	staff := models.Staff{
		SalonID: salonUUID,
		Name:    input.Name,
		Phone:   input.Phone,
		Status:  models.StaffActive,
	}
	if input.Role != "" {
		staff.Role = input.Role
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// GetStaff retrieves all staff members for the salon
func GetStaff(c *gin.Context) {
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

	query := config.DB.Where("salon_id = ?", salonUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var staff []models.Staff
	if err := query.Preload("WorkingHours").Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetStaffMember retrieves one staff member with their working hours
func GetStaffMember(c *gin.Context) {
	staff, ok := loadStaff(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff updates a staff member's profile fields
func UpdateStaff(c *gin.Context) {
	staff, ok := loadStaff(c)
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		staff.Phone = *input.Phone
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.Status != nil {
		staff.Status = *input.Status
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// DeleteStaff soft deletes a staff member
func DeleteStaff(c *gin.Context) {
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

	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, staffUUID).
		Delete(&models.Staff{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}

// GetWorkingHours returns the staff member's stored weekly hours. Staff
// with no stored rows follow the salon's default week.
func GetWorkingHours(c *gin.Context) {
	staff, ok := loadStaff(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staffId":      staff.ID,
		"workingHours": staff.WorkingHours,
		"usesDefault":  len(staff.WorkingHours) == 0,
	})
}

// UpdateWorkingHours replaces the staff member's weekly hours. The body
// carries the full week; weekdays missing from it become non-working days.
func UpdateWorkingHours(c *gin.Context) {
	staff, ok := loadStaff(c)
	if !ok {
		return
	}

	var input struct {
		WorkingHours []WorkingHoursInput `json:"workingHours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rows := make([]models.StaffWorkingHours, 0, len(input.WorkingHours))
	seen := make(map[int]bool)
	for _, day := range input.WorkingHours {
		if seen[day.Weekday] {
			utils.RespondWithError(c, http.StatusBadRequest, "Duplicate weekday in working hours")
			return
		}
		seen[day.Weekday] = true

		hours := scheduling.DayHours{
			Working:    day.IsWorking,
			ShiftStart: day.ShiftStart,
			ShiftEnd:   day.ShiftEnd,
			BreakStart: day.BreakStart,
			BreakEnd:   day.BreakEnd,
		}
		if err := hours.Validate(); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest,
				"Invalid hours for "+time.Weekday(day.Weekday).String()+": "+err.Error())
			return
		}

		rows = append(rows, models.StaffWorkingHours{
			StaffID:    staff.ID,
			Weekday:    day.Weekday,
			IsWorking:  day.IsWorking,
			ShiftStart: day.ShiftStart,
			ShiftEnd:   day.ShiftEnd,
			BreakStart: day.BreakStart,
			BreakEnd:   day.BreakEnd,
		})
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staff.ID).Delete(&models.StaffWorkingHours{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated", "workingHours": rows})
}

// loadStaff resolves the :id path param against the salon and writes the
// error response itself when the lookup fails.
func loadStaff(c *gin.Context) (models.Staff, bool) {
	var staff models.Staff

	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return staff, false
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return staff, false
	}

	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return staff, false
	}

	err = config.DB.Preload("WorkingHours").
		Where("salon_id = ? AND id = ?", salonUUID, staffUUID).
		First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return staff, false
	}
	return staff, true
}
