// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/report"
	"github.com/your-org/fertilizer-backend/internal/domain/sale"
	"gorm.io/gorm"
)

// SaleHandler handles sales endpoints
type SaleHandler struct {
	saleService   *sale.Service
	reportService *report.Service
	config        *config.Config
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *SaleHandler {
	return &SaleHandler{
		saleService:   sale.NewService(db, cfg),
		reportService: report.NewService(db, redisClient, cfg),
		config:        cfg,
	}
}

// CreateSale handles POST /sales
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req sale.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.saleService.CreateSale(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sale created successfully",
		"data":    created,
	})
}

// GetSales handles GET /sales
func (h *SaleHandler) GetSales(c *gin.Context) {
	var req sale.SaleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	sales, total, err := h.saleService.GetSales(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sales retrieved successfully",
		"data": gin.H{
			"sales":      sales,
			"pagination": product.NewPagination(req.Page, req.Limit, total),
		},
	})
}

// GetSale handles GET /sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.saleService.GetSale(id)
	if err != nil {
		h.respondSaleError(c, err, "Failed to retrieve sale")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale retrieved successfully",
		"data":    doc,
	})
}

// saleStatusRequest carries the target status for a transition
type saleStatusRequest struct {
	Status sale.SaleStatus `json:"status" binding:"required"`
}

// UpdateSaleStatus handles PUT /sales/:id/status
func (h *SaleHandler) UpdateSaleStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req saleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	doc, err := h.saleService.UpdateSaleStatus(id, req.Status)
	if err != nil {
		h.respondSaleError(c, err, "Failed to update sale status")
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale status updated successfully",
		"data":    doc,
	})
}

// AddPayment handles POST /sales/:id/payments
func (h *SaleHandler) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req sale.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	payment, err := h.saleService.AddPayment(id, &req)
	if err != nil {
		h.respondSaleError(c, err, "Failed to record payment")
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded successfully",
		"data":    payment,
	})
}

// GetPayments handles GET /sales/:id/payments
func (h *SaleHandler) GetPayments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	payments, err := h.saleService.GetPayments(id)
	if err != nil {
		h.respondSaleError(c, err, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payments retrieved successfully",
		"data":    payments,
	})
}

// invalidateDashboard drops the cached dashboard after a sale mutation.
// Cache staleness is never worth failing the request over.
func (h *SaleHandler) invalidateDashboard(c *gin.Context) {
	_ = h.reportService.InvalidateDashboard(c.Request.Context())
}

// respondSaleError maps sale errors onto HTTP statuses
func (h *SaleHandler) respondSaleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, sale.ErrSaleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, sale.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
