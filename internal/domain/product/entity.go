// internal/domain/product/entity.go
package product

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a fertilizer product in the catalog.
// On-hand quantity is never stored here; the stock domain owns it.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SKU         string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Unit        string         `gorm:"size:20" json:"unit"`   // kg, bag, litre
	Price       int64          `gorm:"not null" json:"price"` // Selling price in cents
	CostPrice   int64          `json:"cost_price"`            // Cost price for profit calculation
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`
	BrandID     *uint          `gorm:"index" json:"brand_id"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Tags        string         `gorm:"size:500" json:"tags"` // Comma-separated tags
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Brand    *Brand   `gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"brand,omitempty"`
}

// Category represents product categories (NPK, urea, organic, ...)
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	ParentID    *uint          `gorm:"index" json:"parent_id"`
	SortOrder   int            `gorm:"default:0" json:"sort_order"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Brand represents fertilizer brands
type Brand struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description string         `gorm:"size:500" json:"description"`
	Website     string         `gorm:"size:255" json:"website"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }
func (Brand) TableName() string    { return "brands" }

// GetFormattedPrice returns the price in major currency units
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}

// GetMargin returns the absolute margin in cents, zero when cost is unknown
func (p *Product) GetMargin() int64 {
	if p.CostPrice <= 0 {
		return 0
	}
	return p.Price - p.CostPrice
}
