// internal/domain/stock/entity.go
package stock

import (
	"time"

	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
)

// EntryStatus represents the lifecycle status of a stock entry
type EntryStatus string

const (
	EntryStatusActive   EntryStatus = "active"
	EntryStatusInactive EntryStatus = "inactive"
)

// StockEntry represents one recorded stock-in event for a product at a
// branch from a supplier. Entries are never hard-deleted; retiring an
// entry flips its status to inactive.
type StockEntry struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ProductID  uint        `gorm:"not null;index" json:"product_id"`
	SupplierID uint        `gorm:"not null;index" json:"supplier_id"`
	BranchID   uint        `gorm:"not null;index" json:"branch_id"`
	Quantity   int         `gorm:"not null" json:"quantity"`
	EntryPrice int64       `gorm:"not null" json:"entry_price"` // Unit price in cents
	EntryDate  time.Time   `gorm:"not null" json:"entry_date"`
	Invoice    string      `gorm:"size:100" json:"invoice"`
	Memo       string      `gorm:"type:text" json:"memo"`
	Status     EntryStatus `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Relationships
	Product  product.Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Supplier supplier.Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Branch   branch.Branch     `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// StockLevel represents the current on-hand quantity for a (product, branch)
// pair. Invariant: Quantity equals the sum of quantities of all active
// stock entries for the pair, and never drops below zero.
type StockLevel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_stock_levels_product_branch" json:"product_id"`
	BranchID  uint      `gorm:"not null;uniqueIndex:idx_stock_levels_product_branch" json:"branch_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Unit      string    `gorm:"size:20" json:"unit"`
	Memo      string    `gorm:"type:text" json:"memo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Branch  branch.Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// TableName overrides
func (StockEntry) TableName() string { return "stock_entries" }
func (StockLevel) TableName() string { return "stock_levels" }

// IsActive reports whether the entry still contributes to its stock level
func (e *StockEntry) IsActive() bool {
	return e.Status == EntryStatusActive
}
