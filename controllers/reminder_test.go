package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestLoadTemplateRejectsMissingSalonContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/reminders/templates/abc", nil)

	_, ok := loadTemplate(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoadTemplateRejectsMalformedID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/reminders/templates/not-a-uuid", nil)
	c.Set("salonId", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := loadTemplate(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalonFromContextParsesClaim(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	want := uuid.New()
	c.Set("salonId", want.String())

	got, ok := salonFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
