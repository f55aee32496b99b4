package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"salonflow-backend/config"
	"salonflow-backend/models"
	"salonflow-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	SalonName    string `json:"salonName" binding:"required"`
	SalonAddress string `json:"salonAddress"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // email or phone
	Password   string `json:"password" binding:"required"`
}

// Register creates a salon with its owner account and signs the owner in.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	result := config.DB.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	salon := models.Salon{
		Name:    input.SalonName,
		Address: input.SalonAddress,
		Phone:   input.Phone,
	}
	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     "owner",
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&salon).Error; err != nil {
			return err
		}
		newUser.SalonID = salon.ID
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		return createDefaultReminderTemplates(tx, salon.ID)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), salon.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":        newUser.ID,
			"email":     newUser.Email,
			"phone":     newUser.Phone,
			"salonName": salon.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Preload("Salon").
		Where("email = ? OR phone = ?", identifier, identifier).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.SalonID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	setTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"phone":     user.Phone,
			"salonName": user.Salon.Name,
		},
	})
}

func Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.Preload("Salon").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"salonName": user.Salon.Name,
		},
	})
}

func setTokenCookie(c *gin.Context, token string) {
	maxAge := 24 * 3600
	c.SetCookie("token", token, maxAge, "/", "", true, true)
}

func createDefaultReminderTemplates(tx *gorm.DB, salonID uuid.UUID) error {
	defaultTemplates := []models.ReminderTemplate{
		{
			SalonID: salonID,
			Type:    "appointment",
			Message: "Hi [CustomerName], this is a reminder of your appointment tomorrow at [Time] with [StaffName]. See you soon!",
		},
		{
			SalonID: salonID,
			Type:    "birthday",
			Message: "Hi [CustomerName], we wish you a very happy birthday! Enjoy 20% off on your next visit this month!",
		},
	}

	for _, template := range defaultTemplates {
		template.ID = uuid.New()
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
	}
	return nil
}
