// internal/interfaces/http/handlers/event.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/event"
	"github.com/your-org/fertilizer-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// EventHandler handles calendar event endpoints
type EventHandler struct {
	eventService *event.Service
	config       *config.Config
}

// NewEventHandler creates a new event handler
func NewEventHandler(db *gorm.DB, cfg *config.Config) *EventHandler {
	return &EventHandler{
		eventService: event.NewService(db, cfg),
		config:       cfg,
	}
}

// GetEvents handles GET /events
func (h *EventHandler) GetEvents(c *gin.Context) {
	var req event.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	events, err := h.eventService.GetEvents(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Events retrieved successfully",
		"data":    events,
	})
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ev, err := h.eventService.GetEvent(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event retrieved successfully",
		"data":    ev,
	})
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req event.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ev, err := h.eventService.CreateEvent(&req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"data":    ev,
	})
}

// UpdateEvent handles PUT /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req event.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ev, err := h.eventService.UpdateEvent(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully",
		"data":    ev,
	})
}

// DeleteEvent handles DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}
