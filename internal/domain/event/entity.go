// internal/domain/event/entity.go
package event

import (
	"time"

	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"gorm.io/gorm"
)

// Event represents a business calendar event (delivery, meeting, stock take)
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null;size:255" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	StartAt     time.Time      `gorm:"not null;index" json:"start_at"`
	EndAt       *time.Time     `json:"end_at"`
	BranchID    *uint          `gorm:"index" json:"branch_id"`
	CreatedBy   uint           `gorm:"index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch *branch.Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}
