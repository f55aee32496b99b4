package utils

import (
	"errors"
	"net/http"

	"salonflow-backend/scheduling"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes a JSON error body with the given status.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithSchedulingError maps scheduling core errors onto HTTP.
// Conflicts carry their reason code so the client can render a specific
// message; unknown ids map to 404; anything else is a validation error.
func RespondWithSchedulingError(c *gin.Context, err error) {
	var conflict *scheduling.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "slot unavailable",
			"reason": string(conflict.Reason),
		})
		return
	}
	if errors.Is(err, scheduling.ErrNotFound) {
		RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}
	RespondWithError(c, http.StatusBadRequest, err.Error())
}
