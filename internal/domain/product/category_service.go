// internal/domain/product/category_service.go
package product

import (
	"fmt"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ParentID    *uint  `json:"parent_id"`
	SortOrder   int    `json:"sort_order"`
}

// CategoryUpdateRequest represents category update data
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *uint   `json:"parent_id"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// GetCategories retrieves all active categories with children
func (s *CategoryService) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Preload("Children").Where("parent_id IS NULL AND is_active = ?", true).
		Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id uint) (*Category, error) {
	var category Category
	if err := s.db.Preload("Children").Preload("Parent").First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("category not found")
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	if req.ParentID != nil {
		var parent Category
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			return nil, fmt.Errorf("parent category not found")
		}
	}

	category := &Category{
		Name:        req.Name,
		Slug:        GenerateSlug(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(id uint, req *CategoryUpdateRequest) (*Category, error) {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("category not found")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = GenerateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, fmt.Errorf("category cannot be its own parent")
		}
		var parent Category
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			return nil, fmt.Errorf("parent category not found")
		}
		updates["parent_id"] = *req.ParentID
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return &category, nil
}

// DeleteCategory soft-deletes a category without products
func (s *CategoryService) DeleteCategory(id uint) error {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		return fmt.Errorf("category not found")
	}

	var productCount int64
	if err := s.db.Model(&Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check category products: %w", err)
	}
	if productCount > 0 {
		return fmt.Errorf("cannot delete category with %d products", productCount)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
