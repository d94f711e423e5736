// internal/domain/sale/entity.go
package sale

import (
	"time"

	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/customer"
	"github.com/your-org/fertilizer-backend/internal/domain/hr"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"gorm.io/gorm"
)

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMobile   PaymentMethod = "mobile"
	PaymentMethodCredit   PaymentMethod = "credit"
)

// Sale represents a sales transaction with a customer
type Sale struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SaleNumber string         `gorm:"uniqueIndex;not null;size:50" json:"sale_number"`
	CustomerID *uint          `gorm:"index" json:"customer_id"`
	BranchID   uint           `gorm:"not null;index" json:"branch_id"`
	EmployeeID *uint          `gorm:"index" json:"employee_id"`
	SaleDate   time.Time      `gorm:"not null" json:"sale_date"`
	Status     SaleStatus     `gorm:"size:20;default:'pending';index" json:"status"`
	Subtotal   int64          `gorm:"not null" json:"subtotal"` // In cents
	Discount   int64          `json:"discount"`
	Total      int64          `gorm:"not null" json:"total"`
	Paid       int64          `json:"paid"`
	Memo       string         `gorm:"type:text" json:"memo"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *customer.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   branch.Branch      `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Employee *hr.Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Items    []SaleItem         `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
	Payments []Payment          `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`
}

// SaleItem represents one product line on a sale
type SaleItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SaleID    uint      `gorm:"not null;index" json:"sale_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"` // In cents
	LineTotal int64     `gorm:"not null" json:"line_total"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Payment represents a payment received against a sale
type Payment struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	SaleID    uint          `gorm:"not null;index" json:"sale_id"`
	Amount    int64         `gorm:"not null" json:"amount"` // In cents
	Method    PaymentMethod `gorm:"size:20;not null" json:"method"`
	PaidAt    time.Time     `gorm:"not null" json:"paid_at"`
	Memo      string        `gorm:"type:text" json:"memo"`
	CreatedAt time.Time     `json:"created_at"`
}

// TableName overrides
func (Sale) TableName() string     { return "sales" }
func (SaleItem) TableName() string { return "sale_items" }
func (Payment) TableName() string  { return "payments" }

// Outstanding returns the unpaid balance on the sale
func (s *Sale) Outstanding() int64 {
	return s.Total - s.Paid
}

// IsSettled reports whether the sale is fully paid
func (s *Sale) IsSettled() bool {
	return s.Paid >= s.Total
}
