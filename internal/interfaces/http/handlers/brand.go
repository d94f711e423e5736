// internal/interfaces/http/handlers/brand.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"gorm.io/gorm"
)

// BrandHandler handles brand endpoints
type BrandHandler struct {
	brandService *product.BrandService
	config       *config.Config
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(db *gorm.DB, cfg *config.Config) *BrandHandler {
	return &BrandHandler{
		brandService: product.NewBrandService(db, cfg),
		config:       cfg,
	}
}

// GetBrands handles GET /brands
func (h *BrandHandler) GetBrands(c *gin.Context) {
	brands, err := h.brandService.GetBrands()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve brands",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brands retrieved successfully",
		"data":    brands,
	})
}

// GetBrand handles GET /brands/:id
func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	brand, err := h.brandService.GetBrand(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand retrieved successfully",
		"data":    brand,
	})
}

// CreateBrand handles POST /brands
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req product.BrandCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	brand, err := h.brandService.CreateBrand(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand created successfully",
		"data":    brand,
	})
}

// UpdateBrand handles PUT /brands/:id
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req product.BrandUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	brand, err := h.brandService.UpdateBrand(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand updated successfully",
		"data":    brand,
	})
}

// DeleteBrand handles DELETE /brands/:id
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.brandService.DeleteBrand(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand deleted successfully",
	})
}
