// internal/domain/product/brand_service.go
package product

import (
	"fmt"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// BrandService handles brand business logic
type BrandService struct {
	db     *gorm.DB
	config *config.Config
}

// NewBrandService creates a new brand service
func NewBrandService(db *gorm.DB, cfg *config.Config) *BrandService {
	return &BrandService{
		db:     db,
		config: cfg,
	}
}

// BrandCreateRequest represents brand creation data
type BrandCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// BrandUpdateRequest represents brand update data
type BrandUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	IsActive    *bool   `json:"is_active"`
}

// GetBrands retrieves all active brands
func (s *BrandService) GetBrands() ([]Brand, error) {
	var brands []Brand
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve brands: %w", err)
	}
	return brands, nil
}

// GetBrand retrieves a brand by ID
func (s *BrandService) GetBrand(id uint) (*Brand, error) {
	var brand Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		return nil, fmt.Errorf("brand not found")
	}
	return &brand, nil
}

// CreateBrand creates a new brand
func (s *BrandService) CreateBrand(req *BrandCreateRequest) (*Brand, error) {
	brand := &Brand{
		Name:        req.Name,
		Slug:        GenerateSlug(req.Name),
		Description: req.Description,
		Website:     req.Website,
		IsActive:    true,
	}

	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return brand, nil
}

// UpdateBrand updates an existing brand
func (s *BrandService) UpdateBrand(id uint, req *BrandUpdateRequest) (*Brand, error) {
	var brand Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		return nil, fmt.Errorf("brand not found")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = GenerateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&brand).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update brand: %w", err)
		}
	}

	return &brand, nil
}

// DeleteBrand soft-deletes a brand
func (s *BrandService) DeleteBrand(id uint) error {
	var brand Brand
	if err := s.db.First(&brand, id).Error; err != nil {
		return fmt.Errorf("brand not found")
	}

	if err := s.db.Delete(&brand).Error; err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	return nil
}
