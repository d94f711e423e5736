// internal/domain/product/service.go
package product

import (
	"fmt"
	"strings"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
	CategoryID uint   `form:"category_id"`
	BrandID    uint   `form:"brand_id"`
	Search     string `form:"search"`
	SortBy     string `form:"sort_by,default=created_at"`
	SortOrder  string `form:"sort_order,default=desc"`
	MinPrice   int64  `form:"min_price"`
	MaxPrice   int64  `form:"max_price"`
	IsActive   *bool  `form:"is_active"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Price       int64  `json:"price" binding:"required"`
	CostPrice   int64  `json:"cost_price"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	BrandID     *uint  `json:"brand_id"`
	IsActive    bool   `json:"is_active"`
	Tags        string `json:"tags"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	Price       *int64  `json:"price"`
	CostPrice   *int64  `json:"cost_price"`
	CategoryID  *uint   `json:"category_id"`
	BrandID     *uint   `json:"brand_id"`
	IsActive    *bool   `json:"is_active"`
	Tags        *string `json:"tags"`
}

// ProductResponse represents product response with pagination
type ProductResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination builds pagination info from a total row count
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductResponse, error) {
	var products []Product
	var total int64

	// Build query
	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("Brand")

	// Apply filters
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.BrandID > 0 {
		query = query.Where("brand_id = ?", req.BrandID)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", search, search, search)
	}

	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}

	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// Validate pagination
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	// Validate sorting
	sortBy := req.SortBy
	switch sortBy {
	case "name", "price", "sku", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(req.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order(sortBy + " " + sortOrder).Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return &ProductResponse{
		Products:   products,
		Pagination: NewPagination(req.Page, req.Limit, total),
	}, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	if err := s.db.Preload("Category").Preload("Brand").First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &product, nil
}

// GetProductBySlug retrieves a product by slug
func (s *Service) GetProductBySlug(slug string) (*Product, error) {
	var product Product
	if err := s.db.Preload("Category").Preload("Brand").Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &product, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	// SKU must be unique
	var existing Product
	if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with SKU '%s' already exists", req.SKU)
	}

	// Category must resolve
	var category Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		return nil, fmt.Errorf("category not found")
	}

	if req.BrandID != nil {
		var brand Brand
		if err := s.db.First(&brand, *req.BrandID).Error; err != nil {
			return nil, fmt.Errorf("brand not found")
		}
	}

	product := &Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Slug:        GenerateSlug(req.Name),
		Description: req.Description,
		Unit:        req.Unit,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		IsActive:    req.IsActive,
		Tags:        req.Tags,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return s.GetProduct(product.ID)
}

// UpdateProduct updates an existing product with the supplied fields only
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	var product Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = GenerateSlug(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CostPrice != nil {
		updates["cost_price"] = *req.CostPrice
	}
	if req.CategoryID != nil {
		var category Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			return nil, fmt.Errorf("category not found")
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.BrandID != nil {
		var brand Brand
		if err := s.db.First(&brand, *req.BrandID).Error; err != nil {
			return nil, fmt.Errorf("brand not found")
		}
		updates["brand_id"] = *req.BrandID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetProduct(product.ID)
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	var product Product
	if err := s.db.First(&product, id).Error; err != nil {
		return fmt.Errorf("product not found")
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// GenerateSlug converts a name to a URL-friendly slug
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "-")
}
