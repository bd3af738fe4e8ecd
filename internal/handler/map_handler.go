package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/service"
	"github.com/famscout/activities-backend-go/pkg/response"
)

// MapHandler handles HTTP requests for clustered map pins
type MapHandler struct {
	maps *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(maps *service.MapService) *MapHandler {
	return &MapHandler{maps: maps}
}

// Clusters handles GET /api/v1/map/clusters
func (h *MapHandler) Clusters(c *gin.Context) {
	var filter models.MapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	clusters, err := h.maps.Clusters(filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to cluster activities", err)
		return
	}

	response.Success(c, clusters)
}
