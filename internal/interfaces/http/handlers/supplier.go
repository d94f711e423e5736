// internal/interfaces/http/handlers/supplier.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	supplierService *supplier.Service
	config          *config.Config
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(db *gorm.DB, cfg *config.Config) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplier.NewService(db, cfg),
		config:          cfg,
	}
}

// GetSuppliers handles GET /suppliers
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	var req supplier.SupplierListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	suppliers, total, err := h.supplierService.GetSuppliers(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve suppliers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Suppliers retrieved successfully",
		"data": gin.H{
			"suppliers":  suppliers,
			"pagination": product.NewPagination(req.Page, req.Limit, total),
		},
	})
}

// GetSupplier handles GET /suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sup, err := h.supplierService.GetSupplier(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Supplier retrieved successfully",
		"data":    sup,
	})
}

// CreateSupplier handles POST /suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req supplier.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sup, err := h.supplierService.CreateSupplier(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Supplier created successfully",
		"data":    sup,
	})
}

// UpdateSupplier handles PUT /suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req supplier.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sup, err := h.supplierService.UpdateSupplier(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Supplier updated successfully",
		"data":    sup,
	})
}

// DeleteSupplier handles DELETE /suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Supplier deleted successfully",
	})
}
