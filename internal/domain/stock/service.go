// internal/domain/stock/service.go
package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// Sentinel errors distinguishing the failure classes callers must map to
// different responses.
var (
	ErrEntryNotFound   = errors.New("stock entry not found")
	ErrLevelNotFound   = errors.New("stock level not found")
	ErrProductNotFound = errors.New("product not found")
	ErrBadReference    = errors.New("referenced record not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrEntryInactive   = errors.New("stock entry already inactive")
	ErrEntryConflict   = errors.New("stock entry was changed by another request")
	ErrNegativeStock   = errors.New("cannot reduce stock below zero")
)

// Service is the stock ledger maintainer. It is the only writer of
// stock_levels: every mutation goes through RecordEntry, ReviseEntry or
// RetireEntry, each of which runs as a single transaction.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new stock service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// RecordEntryRequest represents stock entry creation data
type RecordEntryRequest struct {
	ProductID  uint       `json:"product_id" binding:"required"`
	SupplierID uint       `json:"supplier_id" binding:"required"`
	BranchID   uint       `json:"branch_id"` // Defaults to the configured default branch
	Quantity   int        `json:"quantity" binding:"required,gt=0"`
	EntryPrice int64      `json:"entry_price"`
	EntryDate  *time.Time `json:"entry_date"`
	Invoice    string     `json:"invoice"`
	Memo       string     `json:"memo"`
}

// ReviseEntryRequest represents a sparse stock entry update; nil fields
// retain their prior values.
type ReviseEntryRequest struct {
	ProductID  *uint      `json:"product_id"`
	SupplierID *uint      `json:"supplier_id"`
	BranchID   *uint      `json:"branch_id"`
	Quantity   *int       `json:"quantity"`
	EntryPrice *int64     `json:"entry_price"`
	EntryDate  *time.Time `json:"entry_date"`
	Invoice    *string    `json:"invoice"`
	Memo       *string    `json:"memo"`
}

// EntryListRequest represents stock entry list query parameters
type EntryListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	ProductID  uint   `form:"product_id"`
	BranchID   uint   `form:"branch_id"`
	SupplierID uint   `form:"supplier_id"`
	Status     string `form:"status"`
}

// LevelListRequest represents stock level list query parameters
type LevelListRequest struct {
	Page      int  `form:"page,default=1"`
	Limit     int  `form:"limit,default=20"`
	ProductID uint `form:"product_id"`
	BranchID  uint `form:"branch_id"`
}

// RecordEntry inserts a new active stock entry and rolls its quantity into
// the (product, branch) stock level, creating the level row on first use.
func (s *Service) RecordEntry(req *RecordEntryRequest) (*StockEntry, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	branchID := req.BranchID
	if branchID == 0 {
		branchID = s.config.Stock.DefaultBranchID
	}

	var entry StockEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var prod product.Product
		if err := tx.First(&prod, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		if err := resolveReferences(tx, nil, &req.SupplierID, &branchID); err != nil {
			return err
		}

		entryDate := time.Now().UTC()
		if req.EntryDate != nil {
			entryDate = *req.EntryDate
		}

		entry = StockEntry{
			ProductID:  req.ProductID,
			SupplierID: req.SupplierID,
			BranchID:   branchID,
			Quantity:   req.Quantity,
			EntryPrice: req.EntryPrice,
			EntryDate:  entryDate,
			Invoice:    req.Invoice,
			Memo:       req.Memo,
			Status:     EntryStatusActive,
		}

		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create stock entry: %w", err)
		}

		return s.applyLevelDelta(tx, req.ProductID, branchID, req.Quantity, prod.Unit, req.Memo)
	})
	if err != nil {
		return nil, err
	}

	return s.GetEntry(entry.ID)
}

// ReviseEntry applies a sparse update to a stock entry and keeps the
// affected stock level(s) consistent. When the entry moves to another
// (product, branch) pair its quantity moves with it: the old level is
// decremented and the new one incremented, all in one transaction.
func (s *Service) ReviseEntry(id uint, req *ReviseEntryRequest) (*StockEntry, error) {
	if req.Quantity != nil && *req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// Resolve all supplied references before opening the transaction so a
	// bad request writes nothing and names every unresolved reference.
	if err := resolveReferences(s.db, req.ProductID, req.SupplierID, req.BranchID); err != nil {
		return nil, err
	}

	var entryID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var entry StockEntry
		if err := tx.First(&entry, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("failed to load stock entry: %w", err)
		}

		oldProductID := entry.ProductID
		oldBranchID := entry.BranchID
		oldQuantity := entry.Quantity

		newProductID := oldProductID
		if req.ProductID != nil {
			newProductID = *req.ProductID
		}
		newBranchID := oldBranchID
		if req.BranchID != nil {
			newBranchID = *req.BranchID
		}
		newQuantity := oldQuantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}
		newMemo := entry.Memo
		if req.Memo != nil {
			newMemo = *req.Memo
		}

		updates := make(map[string]interface{})
		if req.ProductID != nil {
			updates["product_id"] = *req.ProductID
		}
		if req.SupplierID != nil {
			updates["supplier_id"] = *req.SupplierID
		}
		if req.BranchID != nil {
			updates["branch_id"] = *req.BranchID
		}
		if req.Quantity != nil {
			updates["quantity"] = *req.Quantity
		}
		if req.EntryPrice != nil {
			updates["entry_price"] = *req.EntryPrice
		}
		if req.EntryDate != nil {
			updates["entry_date"] = *req.EntryDate
		}
		if req.Invoice != nil {
			updates["invoice"] = *req.Invoice
		}
		if req.Memo != nil {
			updates["memo"] = *req.Memo
		}

		if len(updates) > 0 {
			// Guard on the values the level math was derived from; a
			// concurrent writer that changed them makes this a stale update.
			result := tx.Model(&StockEntry{}).
				Where("id = ? AND product_id = ? AND branch_id = ? AND quantity = ? AND status = ?",
					entry.ID, oldProductID, oldBranchID, oldQuantity, entry.Status).
				Updates(updates)
			if result.Error != nil {
				return fmt.Errorf("failed to update stock entry: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrEntryConflict
			}
		}

		// Inactive entries contribute nothing, so there is no level to fix.
		if entry.Status != EntryStatusActive {
			entryID = entry.ID
			return nil
		}

		var prod product.Product
		if err := tx.First(&prod, newProductID).Error; err != nil {
			return fmt.Errorf("failed to load product: %w", err)
		}

		if oldProductID == newProductID && oldBranchID == newBranchID {
			if diff := newQuantity - oldQuantity; diff != 0 {
				if err := s.applyLevelDelta(tx, newProductID, newBranchID, diff, prod.Unit, newMemo); err != nil {
					return err
				}
			}
		} else {
			if err := s.applyLevelDelta(tx, oldProductID, oldBranchID, -oldQuantity, "", ""); err != nil {
				return err
			}
			if err := s.applyLevelDelta(tx, newProductID, newBranchID, newQuantity, prod.Unit, newMemo); err != nil {
				return err
			}
		}

		entryID = entry.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetEntry(entryID)
}

// RetireEntry soft-deletes a stock entry: its quantity is removed from the
// (product, branch) level and the entry is marked inactive, atomically.
// An adjustment that would drive the level negative aborts everything.
func (s *Service) RetireEntry(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// The guarded status flip is the serialization point: it locks the
		// row, and a concurrent retire of the same entry sees zero rows.
		result := tx.Model(&StockEntry{}).
			Where("id = ? AND status = ?", id, EntryStatusActive).
			Update("status", EntryStatusInactive)
		if result.Error != nil {
			return fmt.Errorf("failed to retire stock entry: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&StockEntry{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to load stock entry: %w", err)
			}
			if count == 0 {
				return ErrEntryNotFound
			}
			return ErrEntryInactive
		}

		// Read back after the flip so the quantity reflects the locked row,
		// not a snapshot from before a concurrent revision committed.
		var entry StockEntry
		if err := tx.First(&entry, id).Error; err != nil {
			return fmt.Errorf("failed to load stock entry: %w", err)
		}

		return s.applyLevelDelta(tx, entry.ProductID, entry.BranchID, -entry.Quantity, "", "")
	})
}

// applyLevelDelta adjusts the stock level for a (product, branch) pair by
// delta using a single guarded UPDATE, so concurrent adjustments serialize
// at the storage layer instead of racing through read-then-write. A missing
// level row is created for positive deltas and rejected for the rest.
func (s *Service) applyLevelDelta(tx *gorm.DB, productID, branchID uint, delta int, unit, memo string) error {
	result := tx.Model(&StockLevel{}).
		Where("product_id = ? AND branch_id = ? AND quantity + ? >= 0", productID, branchID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust stock level: %w", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// Zero rows affected: either the row exists and the guard blocked a
	// negative result, or there is no row yet for this pair.
	var count int64
	if err := tx.Model(&StockLevel{}).
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check stock level: %w", err)
	}
	if count > 0 || delta <= 0 {
		return ErrNegativeStock
	}

	level := &StockLevel{
		ProductID: productID,
		BranchID:  branchID,
		Quantity:  delta,
		Unit:      unit,
		Memo:      memo,
	}
	if err := tx.Create(level).Error; err != nil {
		return fmt.Errorf("failed to create stock level: %w", err)
	}

	return nil
}

// resolveReferences verifies the supplied foreign keys and reports every
// one that does not resolve.
func resolveReferences(tx *gorm.DB, productID, supplierID, branchID *uint) error {
	var bad []string

	if productID != nil {
		var count int64
		if err := tx.Model(&product.Product{}).Where("id = ?", *productID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		if count == 0 {
			bad = append(bad, fmt.Sprintf("product %d", *productID))
		}
	}
	if supplierID != nil {
		var count int64
		if err := tx.Model(&supplier.Supplier{}).Where("id = ?", *supplierID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check supplier: %w", err)
		}
		if count == 0 {
			bad = append(bad, fmt.Sprintf("supplier %d", *supplierID))
		}
	}
	if branchID != nil {
		var count int64
		if err := tx.Model(&branch.Branch{}).Where("id = ?", *branchID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check branch: %w", err)
		}
		if count == 0 {
			bad = append(bad, fmt.Sprintf("branch %d", *branchID))
		}
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrBadReference, strings.Join(bad, ", "))
	}
	return nil
}

// GetEntry retrieves a stock entry with its associations
func (s *Service) GetEntry(id uint) (*StockEntry, error) {
	var entry StockEntry
	if err := s.db.Preload("Product").Preload("Supplier").Preload("Branch").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to load stock entry: %w", err)
	}
	return &entry, nil
}

// GetEntries retrieves stock entries with filters and pagination
func (s *Service) GetEntries(req *EntryListRequest) ([]StockEntry, int64, error) {
	var entries []StockEntry
	var total int64

	query := s.db.Model(&StockEntry{}).
		Preload("Product").
		Preload("Supplier").
		Preload("Branch")

	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
	}
	if req.SupplierID > 0 {
		query = query.Where("supplier_id = ?", req.SupplierID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stock entries: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("entry_date DESC, id DESC").Offset(offset).Limit(req.Limit).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve stock entries: %w", err)
	}

	return entries, total, nil
}

// GetLevel retrieves the stock level for a (product, branch) pair
func (s *Service) GetLevel(productID, branchID uint) (*StockLevel, error) {
	var level StockLevel
	if err := s.db.Preload("Product").Preload("Branch").
		Where("product_id = ? AND branch_id = ?", productID, branchID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to load stock level: %w", err)
	}
	return &level, nil
}

// GetLevels retrieves stock levels with filters and pagination
func (s *Service) GetLevels(req *LevelListRequest) ([]StockLevel, int64, error) {
	var levels []StockLevel
	var total int64

	query := s.db.Model(&StockLevel{}).
		Preload("Product").
		Preload("Branch")

	if req.ProductID > 0 {
		query = query.Where("product_id = ?", req.ProductID)
	}
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stock levels: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("product_id ASC, branch_id ASC").Offset(offset).Limit(req.Limit).Find(&levels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve stock levels: %w", err)
	}

	return levels, total, nil
}

// TotalOnHand returns the summed level quantity for a product across
// branches, or for one branch when branchID is non-nil.
func (s *Service) TotalOnHand(productID uint, branchID *uint) (int, error) {
	query := s.db.Model(&StockLevel{}).Where("product_id = ?", productID)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var total int64
	if err := query.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum stock levels: %w", err)
	}

	return int(total), nil
}
