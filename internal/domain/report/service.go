// internal/domain/report/service.go
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/customer"
	"github.com/your-org/fertilizer-backend/internal/domain/hr"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/sale"
	"github.com/your-org/fertilizer-backend/internal/domain/stock"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
	"gorm.io/gorm"
)

const dashboardCacheKey = "report:dashboard"

// Service builds management reports and spreadsheet exports
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new report service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// DashboardSummary represents the headline figures for the dashboard
type DashboardSummary struct {
	ProductCount    int64     `json:"product_count"`
	CustomerCount   int64     `json:"customer_count"`
	SupplierCount   int64     `json:"supplier_count"`
	EmployeeCount   int64     `json:"employee_count"`
	TotalOnHand     int64     `json:"total_on_hand"`
	SalesToday      int64     `json:"sales_today"`       // Completed sale totals, in cents
	SalesThisMonth  int64     `json:"sales_this_month"`  // Completed sale totals, in cents
	OutstandingDebt int64     `json:"outstanding_debt"`  // Unpaid balance across non-cancelled sales
	GeneratedAt     time.Time `json:"generated_at"`
}

// GetDashboardSummary returns the dashboard figures, serving from the
// redis cache when a fresh copy exists.
func (s *Service) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	if cached, err := s.redisClient.Get(ctx, dashboardCacheKey).Result(); err == nil {
		var summary DashboardSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	summary, err := s.buildDashboardSummary()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(summary); err == nil {
		// Cache failures are not fatal, the figures were already computed
		s.redisClient.Set(ctx, dashboardCacheKey, payload, s.config.Stock.ReportCacheTTL)
	}

	return summary, nil
}

func (s *Service) buildDashboardSummary() (*DashboardSummary, error) {
	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}

	if err := s.db.Model(&product.Product{}).Where("is_active = ?", true).Count(&summary.ProductCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&customer.Customer{}).Count(&summary.CustomerCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if err := s.db.Model(&supplier.Supplier{}).Count(&summary.SupplierCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count suppliers: %w", err)
	}
	if err := s.db.Model(&hr.Employee{}).Where("status = ?", hr.EmployeeStatusActive).Count(&summary.EmployeeCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	var onHand struct{ Total int64 }
	if err := s.db.Model(&stock.StockLevel{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Scan(&onHand).Error; err != nil {
		return nil, fmt.Errorf("failed to sum stock levels: %w", err)
	}
	summary.TotalOnHand = onHand.Total

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var salesToday struct{ Total int64 }
	if err := s.db.Model(&sale.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status = ? AND sale_date >= ?", sale.SaleStatusCompleted, dayStart).
		Scan(&salesToday).Error; err != nil {
		return nil, fmt.Errorf("failed to sum today's sales: %w", err)
	}
	summary.SalesToday = salesToday.Total

	var salesMonth struct{ Total int64 }
	if err := s.db.Model(&sale.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status = ? AND sale_date >= ?", sale.SaleStatusCompleted, monthStart).
		Scan(&salesMonth).Error; err != nil {
		return nil, fmt.Errorf("failed to sum this month's sales: %w", err)
	}
	summary.SalesThisMonth = salesMonth.Total

	var outstanding struct{ Total int64 }
	if err := s.db.Model(&sale.Sale{}).
		Select("COALESCE(SUM(total - paid), 0) AS total").
		Where("status <> ? AND total > paid", sale.SaleStatusCancelled).
		Scan(&outstanding).Error; err != nil {
		return nil, fmt.Errorf("failed to sum outstanding balances: %w", err)
	}
	summary.OutstandingDebt = outstanding.Total

	return summary, nil
}

// InvalidateDashboard drops the cached dashboard figures
func (s *Service) InvalidateDashboard(ctx context.Context) error {
	return s.redisClient.Del(ctx, dashboardCacheKey).Err()
}

// StockReportRequest represents stock export filters
type StockReportRequest struct {
	BranchID uint `form:"branch_id"`
}

// ExportStockLevels builds an xlsx workbook of current stock levels
func (s *Service) ExportStockLevels(req *StockReportRequest) (*bytes.Buffer, error) {
	query := s.db.Model(&stock.StockLevel{}).
		Preload("Product").
		Preload("Branch").
		Order("branch_id ASC, product_id ASC")
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
	}

	var levels []stock.StockLevel
	if err := query.Find(&levels).Error; err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock Levels"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Branch", "SKU", "Product", "Unit", "Quantity", "Updated At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, level := range levels {
		values := []interface{}{
			level.Branch.Name,
			level.Product.SKU,
			level.Product.Name,
			level.Unit,
			level.Quantity,
			level.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// SalesReportRequest represents sales export filters
type SalesReportRequest struct {
	BranchID uint   `form:"branch_id"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`
}

// ExportSales builds an xlsx workbook of sales in the given window
func (s *Service) ExportSales(req *SalesReportRequest) (*bytes.Buffer, error) {
	query := s.db.Model(&sale.Sale{}).
		Preload("Customer").
		Preload("Branch").
		Order("sale_date ASC, id ASC")
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
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

	var sales []sale.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Sale Number", "Date", "Branch", "Customer", "Status", "Subtotal", "Discount", "Total", "Paid", "Outstanding"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, doc := range sales {
		customerName := ""
		if doc.Customer != nil {
			customerName = doc.Customer.Name
		}
		values := []interface{}{
			doc.SaleNumber,
			doc.SaleDate.Format("2006-01-02"),
			doc.Branch.Name,
			customerName,
			string(doc.Status),
			centsToMajor(doc.Subtotal),
			centsToMajor(doc.Discount),
			centsToMajor(doc.Total),
			centsToMajor(doc.Paid),
			centsToMajor(doc.Outstanding()),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func centsToMajor(v int64) float64 {
	return float64(v) / 100
}
