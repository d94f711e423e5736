// internal/domain/supplier/entity.go
package supplier

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a fertilizer supplier
type Supplier struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	ContactPerson string         `gorm:"size:100" json:"contact_person"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Email         string         `gorm:"size:100" json:"email"`
	Address       string         `gorm:"type:text" json:"address"`
	Memo          string         `gorm:"type:text" json:"memo"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}
