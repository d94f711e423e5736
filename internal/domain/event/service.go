// internal/domain/event/service.go
package event

import (
	"fmt"
	"time"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles calendar event business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new event service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// EventListRequest represents event list query parameters
type EventListRequest struct {
	From     string `form:"from"` // YYYY-MM-DD
	To       string `form:"to"`
	BranchID uint   `form:"branch_id"`
}

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartAt     time.Time  `json:"start_at" binding:"required"`
	EndAt       *time.Time `json:"end_at"`
	BranchID    *uint      `json:"branch_id"`
}

// UpdateEventRequest represents event update data
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	BranchID    *uint      `json:"branch_id"`
}

// CreateEvent creates a new event
func (s *Service) CreateEvent(req *CreateEventRequest, userID uint) (*Event, error) {
	if req.EndAt != nil && req.EndAt.Before(req.StartAt) {
		return nil, fmt.Errorf("event cannot end before it starts")
	}

	event := &Event{
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		BranchID:    req.BranchID,
		CreatedBy:   userID,
	}

	if err := s.db.Create(event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvents retrieves events within an optional date window
func (s *Service) GetEvents(req *EventListRequest) ([]Event, error) {
	query := s.db.Model(&Event{}).Preload("Branch")

	if req.From != "" {
		if from, err := time.Parse("2006-01-02", req.From); err == nil {
			query = query.Where("start_at >= ?", from)
		}
	}
	if req.To != "" {
		if to, err := time.Parse("2006-01-02", req.To); err == nil {
			query = query.Where("start_at < ?", to.AddDate(0, 0, 1))
		}
	}
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
	}

	var events []Event
	if err := query.Order("start_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}
	return events, nil
}

// GetEvent retrieves an event by ID
func (s *Service) GetEvent(id uint) (*Event, error) {
	var event Event
	if err := s.db.Preload("Branch").First(&event, id).Error; err != nil {
		return nil, fmt.Errorf("event not found")
	}
	return &event, nil
}

// UpdateEvent updates an existing event
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest) (*Event, error) {
	var event Event
	if err := s.db.First(&event, id).Error; err != nil {
		return nil, fmt.Errorf("event not found")
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartAt != nil {
		updates["start_at"] = *req.StartAt
	}
	if req.EndAt != nil {
		updates["end_at"] = *req.EndAt
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&event).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}

	return &event, nil
}

// DeleteEvent soft-deletes an event
func (s *Service) DeleteEvent(id uint) error {
	var event Event
	if err := s.db.First(&event, id).Error; err != nil {
		return fmt.Errorf("event not found")
	}

	if err := s.db.Delete(&event).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}
