package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/famscout/activities-backend-go/internal/middleware"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/service"
	"github.com/famscout/activities-backend-go/pkg/response"
)

// FavoriteHandler handles HTTP requests for favorites and capacity alerts
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List handles GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favorites.List(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list favorites", err)
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	response.Success(c, favorites)
}

type addFavoriteRequest struct {
	ActivityID string `json:"activityId"`
}

// Add handles POST /api/v1/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActivityID == "" {
		response.Error(c, http.StatusBadRequest, "activityId is required", err)
		return
	}

	favorite, err := h.favorites.Add(middleware.UserID(c), req.ActivityID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(c, http.StatusNotFound, "Activity not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to add favorite", err)
		return
	}
	response.Success(c, favorite)
}

// Remove handles DELETE /api/v1/favorites/:activityId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	removed, err := h.favorites.Remove(middleware.UserID(c), c.Param("activityId"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to remove favorite", err)
		return
	}
	if !removed {
		response.Error(c, http.StatusNotFound, "Favorite not found", nil)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// Details handles GET /api/v1/favorites/details: full activity records for
// every favorite, fetched concurrently.
func (h *FavoriteHandler) Details(c *gin.Context) {
	details, err := h.favorites.Details(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to load favorite details", err)
		return
	}
	response.Success(c, details)
}

// CapacityAlerts handles GET /api/v1/favorites/capacity-alerts. With
// ?poll=true the favorites are re-checked first; otherwise only previously
// recorded alerts are returned.
func (h *FavoriteHandler) CapacityAlerts(c *gin.Context) {
	userID := middleware.UserID(c)

	if c.Query("poll") == "true" {
		alerts, err := h.favorites.PollCapacity(userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to poll capacity", err)
			return
		}
		if alerts == nil {
			alerts = []models.CapacityAlert{}
		}
		response.Success(c, alerts)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	alerts, err := h.favorites.Alerts(userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list capacity alerts", err)
		return
	}
	if alerts == nil {
		alerts = []models.CapacityAlert{}
	}
	response.Success(c, alerts)
}
