// internal/domain/customer/entity.go
package customer

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a buying customer (farmer, reseller, co-op)
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Phone     string         `gorm:"size:20;index" json:"phone"`
	Email     string         `gorm:"size:100" json:"email"`
	Address   string         `gorm:"type:text" json:"address"`
	Memo      string         `gorm:"type:text" json:"memo"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
