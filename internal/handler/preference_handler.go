package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famscout/activities-backend-go/internal/middleware"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/service"
	"github.com/famscout/activities-backend-go/pkg/response"
)

// PreferenceHandler handles HTTP requests for account-level preferences
type PreferenceHandler struct {
	prefs *service.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(prefs *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// Get handles GET /api/v1/preferences
func (h *PreferenceHandler) Get(c *gin.Context) {
	prefs, err := h.prefs.GetUserPreferences(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get preferences", err)
		return
	}
	response.Success(c, prefs)
}

// Save handles PUT /api/v1/preferences
func (h *PreferenceHandler) Save(c *gin.Context) {
	var prefs models.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.prefs.SaveUserPreferences(middleware.UserID(c), &prefs); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to save preferences", err)
		return
	}
	response.Success(c, prefs)
}
