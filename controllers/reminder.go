// controllers/reminder.go
package controllers

import (
	"errors"
	"net/http"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReminderTemplateInput struct {
	Type    string `json:"type" binding:"required,oneof=appointment birthday"`
	Message string `json:"message" binding:"required"`
}

type UpdateReminderTemplateInput struct {
	Type     *string `json:"type" binding:"omitempty,oneof=appointment birthday"`
	Message  *string `json:"message"`
	IsActive *bool   `json:"isActive"`
}

// loadTemplate resolves the :id route parameter against the salon's
// templates. It writes the error response itself; callers bail on false.
func loadTemplate(c *gin.Context) (models.ReminderTemplate, bool) {
	var template models.ReminderTemplate

	salonUUID, ok := salonFromContext(c)
	if !ok {
		return template, false
	}

	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return template, false
	}

	err = config.DB.Where("salon_id = ? AND id = ?", salonUUID, templateUUID).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return template, false
	}
	return template, true
}

// templateTypeTaken reports whether the salon already has a template of
// the given type, excluding excludeID. One template per type per salon.
func templateTypeTaken(salonID uuid.UUID, templateType string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := config.DB.Model(&models.ReminderTemplate{}).
		Where("salon_id = ? AND type = ?", salonID, templateType)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func CreateReminderTemplate(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var input CreateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	taken, err := templateTypeTaken(salonUUID, input.Type, uuid.Nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "Template for this type already exists")
		return
	}

	template := models.ReminderTemplate{
		ID:       uuid.New(),
		SalonID:  salonUUID,
		Type:     input.Type,
		Message:  input.Message,
		IsActive: true,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

func GetReminderTemplates(c *gin.Context) {
	salonUUID, ok := salonFromContext(c)
	if !ok {
		return
	}

	var templates []models.ReminderTemplate
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("type").
		Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

func GetReminderTemplate(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, template)
}

func UpdateReminderTemplate(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	var input UpdateReminderTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Type != nil && *input.Type != template.Type {
		taken, err := templateTypeTaken(template.SalonID, *input.Type, template.ID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if taken {
			utils.RespondWithError(c, http.StatusConflict, "Template for this type already exists")
			return
		}
		template.Type = *input.Type
	}
	if input.Message != nil {
		template.Message = *input.Message
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}

func DeleteReminderTemplate(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	if err := config.DB.Delete(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
