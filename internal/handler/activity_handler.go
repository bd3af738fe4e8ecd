package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famscout/activities-backend-go/internal/middleware"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/service"
	"github.com/famscout/activities-backend-go/pkg/response"
)

// ActivityHandler handles HTTP requests for activity search
type ActivityHandler struct {
	search *service.SearchService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(search *service.SearchService) *ActivityHandler {
	return &ActivityHandler{search: search}
}

// List handles GET /api/v1/activities
func (h *ActivityHandler) List(c *gin.Context) {
	var filter models.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	withAgg := c.Query("aggregations") == "true"
	resp, err := h.search.Search(filter, middleware.UserID(c), withAgg)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to search activities", err)
		return
	}

	response.Success(c, resp)
}

// GetByID handles GET /api/v1/activities/:id
func (h *ActivityHandler) GetByID(c *gin.Context) {
	activity, err := h.search.GetActivity(c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get activity", err)
		return
	}
	if activity == nil {
		response.Error(c, http.StatusNotFound, "Activity not found", nil)
		return
	}

	response.Success(c, activity)
}

type composedSearchQuery struct {
	Screen   string   `form:"screen,default=all"`
	ChildIDs []string `form:"childIds"`
	Mode     string   `form:"mode,default=or"`
	Limit    int      `form:"limit,default=50"`
	Offset   int      `form:"offset"`
}

// ComposedSearch handles GET /api/v1/activities/search, the screen-load
// query that layers child preferences, the session's contextual filters and
// the screen-implied filter.
func (h *ActivityHandler) ComposedSearch(c *gin.Context) {
	var q composedSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	var contextual models.ContextualFilters
	if err := c.ShouldBindQuery(&contextual); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid contextual filters", err)
		return
	}

	resp, err := h.search.ComposedSearch(service.ComposedSearchInput{
		UserID:     middleware.UserID(c),
		Screen:     q.Screen,
		Contextual: &contextual,
		ChildIDs:   q.ChildIDs,
		Mode:       q.Mode,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to search activities", err)
		return
	}

	response.Success(c, resp)
}
