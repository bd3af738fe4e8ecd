package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famscout/activities-backend-go/internal/middleware"
	"github.com/famscout/activities-backend-go/internal/models"
	"github.com/famscout/activities-backend-go/internal/service"
	"github.com/famscout/activities-backend-go/pkg/response"
)

// ChildHandler handles HTTP requests for child profiles and their
// preferences
type ChildHandler struct {
	children *service.ChildService
	prefs    *service.PreferenceService
}

// NewChildHandler creates a new child handler
func NewChildHandler(children *service.ChildService, prefs *service.PreferenceService) *ChildHandler {
	return &ChildHandler{children: children, prefs: prefs}
}

// List handles GET /api/v1/children
func (h *ChildHandler) List(c *gin.Context) {
	children, err := h.children.List(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list children", err)
		return
	}
	if children == nil {
		children = []models.Child{}
	}
	response.Success(c, children)
}

// Get handles GET /api/v1/children/:id
func (h *ChildHandler) Get(c *gin.Context) {
	child, err := h.children.Get(middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get child", err)
		return
	}
	if child == nil {
		response.Error(c, http.StatusNotFound, "Child not found", nil)
		return
	}
	response.Success(c, child)
}

// Create handles POST /api/v1/children
func (h *ChildHandler) Create(c *gin.Context) {
	var child models.Child
	if err := c.ShouldBindJSON(&child); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.children.Create(middleware.UserID(c), &child); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create child", err)
		return
	}
	response.Success(c, child)
}

// Update handles PUT /api/v1/children/:id
func (h *ChildHandler) Update(c *gin.Context) {
	var child models.Child
	if err := c.ShouldBindJSON(&child); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	child.ID = c.Param("id")

	updated, err := h.children.Update(middleware.UserID(c), &child)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update child", err)
		return
	}
	if !updated {
		response.Error(c, http.StatusNotFound, "Child not found", nil)
		return
	}
	response.Success(c, child)
}

// Delete handles DELETE /api/v1/children/:id
func (h *ChildHandler) Delete(c *gin.Context) {
	deleted, err := h.children.Delete(middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to delete child", err)
		return
	}
	if !deleted {
		response.Error(c, http.StatusNotFound, "Child not found", nil)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetPreferences handles GET /api/v1/children/:id/preferences
func (h *ChildHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.prefs.GetChildPreferences(middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(c, http.StatusNotFound, "Child not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get preferences", err)
		return
	}
	if prefs == nil {
		prefs = &models.ChildPreferences{ChildID: c.Param("id")}
	}
	response.Success(c, prefs)
}

// SavePreferences handles PUT /api/v1/children/:id/preferences
func (h *ChildHandler) SavePreferences(c *gin.Context) {
	var prefs models.ChildPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	prefs.ChildID = c.Param("id")

	if err := h.prefs.SaveChildPreferences(middleware.UserID(c), &prefs); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			response.Error(c, http.StatusNotFound, "Child not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to save preferences", err)
		return
	}
	response.Success(c, prefs)
}

type mergedFilterQuery struct {
	ChildIDs []string `form:"ids"`
	Mode     string   `form:"mode,default=or"`
}

// MergedFilter handles GET /api/v1/children/merged-filter
func (h *ChildHandler) MergedFilter(c *gin.Context) {
	var q mergedFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	merged, err := h.prefs.MergedFilter(middleware.UserID(c), q.ChildIDs, q.Mode)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to merge preferences", err)
		return
	}
	response.Success(c, merged)
}
