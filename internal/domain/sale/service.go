// internal/domain/sale/service.go
package sale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/customer"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"gorm.io/gorm"
)

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInvalidTransition = errors.New("invalid sale status transition")
)

// Service handles sales business logic. Sales are pure documents: stock
// levels are owned by the stock ledger and never touched here.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new sale service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SaleItemRequest represents one line of a sale creation request
type SaleItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
	UnitPrice int64 `json:"unit_price"` // Defaults to the product's list price
}

// CreateSaleRequest represents sale creation data
type CreateSaleRequest struct {
	CustomerID *uint             `json:"customer_id"`
	BranchID   uint              `json:"branch_id"`
	EmployeeID *uint             `json:"employee_id"`
	SaleDate   *time.Time        `json:"sale_date"`
	Discount   int64             `json:"discount"`
	Memo       string            `json:"memo"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// SaleListRequest represents sale list query parameters
type SaleListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CustomerID uint   `form:"customer_id"`
	BranchID   uint   `form:"branch_id"`
	Status     string `form:"status"`
	DateFrom   string `form:"date_from"` // YYYY-MM-DD
	DateTo     string `form:"date_to"`
}

// PaymentRequest represents payment recording data
type PaymentRequest struct {
	Amount int64         `json:"amount" binding:"required,gt=0"`
	Method PaymentMethod `json:"method" binding:"required"`
	PaidAt *time.Time    `json:"paid_at"`
	Memo   string        `json:"memo"`
}

// CreateSale records a new sale with its items, computing totals
// server-side, as one transaction.
func (s *Service) CreateSale(req *CreateSaleRequest) (*Sale, error) {
	branchID := req.BranchID
	if branchID == 0 {
		branchID = s.config.Stock.DefaultBranchID
	}

	var sale Sale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&branch.Branch{}, branchID).Error; err != nil {
			return fmt.Errorf("branch not found")
		}
		if req.CustomerID != nil {
			if err := tx.First(&customer.Customer{}, *req.CustomerID).Error; err != nil {
				return fmt.Errorf("customer not found")
			}
		}

		saleDate := time.Now().UTC()
		if req.SaleDate != nil {
			saleDate = *req.SaleDate
		}

		items := make([]SaleItem, 0, len(req.Items))
		var subtotal int64
		for _, item := range req.Items {
			var prod product.Product
			if err := tx.First(&prod, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d not found", item.ProductID)
			}

			unitPrice := item.UnitPrice
			if unitPrice <= 0 {
				unitPrice = prod.Price
			}
			lineTotal := unitPrice * int64(item.Quantity)
			subtotal += lineTotal

			items = append(items, SaleItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				LineTotal: lineTotal,
			})
		}

		total := subtotal - req.Discount
		if total < 0 {
			return fmt.Errorf("discount exceeds subtotal")
		}

		sale = Sale{
			SaleNumber: generateSaleNumber(),
			CustomerID: req.CustomerID,
			BranchID:   branchID,
			EmployeeID: req.EmployeeID,
			SaleDate:   saleDate,
			Status:     SaleStatusPending,
			Subtotal:   subtotal,
			Discount:   req.Discount,
			Total:      total,
			Memo:       req.Memo,
			Items:      items,
		}

		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetSale(sale.ID)
}

// GetSales retrieves sales with filters and pagination
func (s *Service) GetSales(req *SaleListRequest) ([]Sale, int64, error) {
	var sales []Sale
	var total int64

	query := s.db.Model(&Sale{}).
		Preload("Customer").
		Preload("Branch").
		Preload("Items")

	if req.CustomerID > 0 {
		query = query.Where("customer_id = ?", req.CustomerID)
	}
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", req.DateFrom); err == nil {
			query = query.Where("sale_date >= ?", from)
		}
	}
	if req.DateTo != "" {
		if to, err := time.Parse("2006-01-02", req.DateTo); err == nil {
			query = query.Where("sale_date < ?", to.AddDate(0, 0, 1))
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("sale_date DESC, id DESC").Offset(offset).Limit(req.Limit).Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	return sales, total, nil
}

// GetSale retrieves a sale with items and payments
func (s *Service) GetSale(id uint) (*Sale, error) {
	var sale Sale
	if err := s.db.Preload("Customer").Preload("Branch").Preload("Employee").
		Preload("Items.Product").Preload("Payments").
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}
	return &sale, nil
}

// UpdateSaleStatus transitions a sale between statuses. Only
// pending -> completed and pending -> cancelled are allowed.
func (s *Service) UpdateSaleStatus(id uint, status SaleStatus) (*Sale, error) {
	var sale Sale
	if err := s.db.First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}

	if sale.Status != SaleStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sale.Status, status)
	}
	if status != SaleStatusCompleted && status != SaleStatusCancelled {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sale.Status, status)
	}

	if err := s.db.Model(&sale).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update sale status: %w", err)
	}

	return s.GetSale(sale.ID)
}

// AddPayment records a payment against a sale and accumulates the paid
// amount on the sale document, atomically.
func (s *Service) AddPayment(saleID uint, req *PaymentRequest) (*Payment, error) {
	var payment Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale Sale
		if err := tx.First(&sale, saleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return fmt.Errorf("failed to load sale: %w", err)
		}

		if sale.Status == SaleStatusCancelled {
			return fmt.Errorf("cannot record payment on a cancelled sale")
		}

		paidAt := time.Now().UTC()
		if req.PaidAt != nil {
			paidAt = *req.PaidAt
		}

		payment = Payment{
			SaleID: saleID,
			Amount: req.Amount,
			Method: req.Method,
			PaidAt: paidAt,
			Memo:   req.Memo,
		}

		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := tx.Model(&sale).
			Update("paid", gorm.Expr("paid + ?", req.Amount)).Error; err != nil {
			return fmt.Errorf("failed to update sale paid amount: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetPayments retrieves all payments for a sale
func (s *Service) GetPayments(saleID uint) ([]Payment, error) {
	var sale Sale
	if err := s.db.First(&sale, saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}

	var payments []Payment
	if err := s.db.Where("sale_id = ?", saleID).Order("paid_at ASC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	return payments, nil
}

// generateSaleNumber builds a short, unique, human-readable sale number
func generateSaleNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("S-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
