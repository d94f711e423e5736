// internal/domain/supplier/service.go
package supplier

import (
	"fmt"
	"strings"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles supplier business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new supplier service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// SupplierListRequest represents supplier list query parameters
type SupplierListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

// CreateSupplierRequest represents supplier creation data
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Memo          string `json:"memo"`
}

// UpdateSupplierRequest represents supplier update data
type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	Memo          *string `json:"memo"`
	IsActive      *bool   `json:"is_active"`
}

// CreateSupplier creates a new supplier
func (s *Service) CreateSupplier(req *CreateSupplierRequest) (*Supplier, error) {
	supplier := &Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Memo:          req.Memo,
		IsActive:      true,
	}

	if err := s.db.Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return supplier, nil
}

// GetSuppliers retrieves suppliers with search and pagination
func (s *Service) GetSuppliers(req *SupplierListRequest) ([]Supplier, int64, error) {
	var suppliers []Supplier
	var total int64

	query := s.db.Model(&Supplier{})

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(contact_person) LIKE ? OR phone LIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name ASC").Offset(offset).Limit(req.Limit).Find(&suppliers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve suppliers: %w", err)
	}

	return suppliers, total, nil
}

// GetSupplier retrieves a supplier by ID
func (s *Service) GetSupplier(id uint) (*Supplier, error) {
	var supplier Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		return nil, fmt.Errorf("supplier not found")
	}
	return &supplier, nil
}

// UpdateSupplier updates an existing supplier
func (s *Service) UpdateSupplier(id uint, req *UpdateSupplierRequest) (*Supplier, error) {
	var supplier Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		return nil, fmt.Errorf("supplier not found")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = *req.ContactPerson
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Memo != nil {
		updates["memo"] = *req.Memo
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&supplier).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update supplier: %w", err)
		}
	}

	return &supplier, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *Service) DeleteSupplier(id uint) error {
	var supplier Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		return fmt.Errorf("supplier not found")
	}

	if err := s.db.Delete(&supplier).Error; err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	return nil
}
