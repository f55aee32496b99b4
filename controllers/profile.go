package controllers

import (
	"net/http"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// GetProfile returns the salon's profile and notification settings.
func GetProfile(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                    salon.ID,
		"name":                  salon.Name,
		"address":               salon.Address,
		"phone":                 salon.Phone,
		"appointmentReminders":  salon.AppointmentReminders,
		"birthdayReminders":     salon.BirthdayReminders,
		"smsNotifications":      salon.SMSNotifications,
		"whatsAppNotifications": salon.WhatsAppNotifications,
	})
}

// UpdateProfile updates the salon's basic details.
func UpdateProfile(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.Phone != nil {
		salon.Phone = *input.Phone
	}

	if err := config.DB.Save(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateNotificationSettings toggles the salon's reminder channels.
func UpdateNotificationSettings(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}

	var input struct {
		AppointmentReminders  *bool `json:"appointmentReminders"`
		BirthdayReminders     *bool `json:"birthdayReminders"`
		SMSNotifications      *bool `json:"smsNotifications"`
		WhatsAppNotifications *bool `json:"whatsAppNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := map[string]interface{}{}
	if input.AppointmentReminders != nil {
		updates["appointment_reminders"] = *input.AppointmentReminders
	}
	if input.BirthdayReminders != nil {
		updates["birthday_reminders"] = *input.BirthdayReminders
	}
	if input.SMSNotifications != nil {
		updates["sms_notifications"] = *input.SMSNotifications
	}
	if input.WhatsAppNotifications != nil {
		updates["whatsapp_notifications"] = *input.WhatsAppNotifications
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&models.Salon{}).Where("id = ?", salon.ID).
		Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

func loadSalon(c *gin.Context) (models.Salon, bool) {
	var salon models.Salon

	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return salon, false
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return salon, false
	}

	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return salon, false
	}
	return salon, true
}
