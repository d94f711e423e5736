// internal/interfaces/http/handlers/stock.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"github.com/your-org/fertilizer-backend/internal/domain/report"
	"github.com/your-org/fertilizer-backend/internal/domain/stock"
	"gorm.io/gorm"
)

// StockHandler handles stock ledger endpoints
type StockHandler struct {
	stockService  *stock.Service
	reportService *report.Service
	config        *config.Config
}

// NewStockHandler creates a new stock handler
func NewStockHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *StockHandler {
	return &StockHandler{
		stockService:  stock.NewService(db, cfg),
		reportService: report.NewService(db, redisClient, cfg),
		config:        cfg,
	}
}

// RecordEntry handles POST /stock/entries
func (h *StockHandler) RecordEntry(c *gin.Context) {
	var req stock.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.stockService.RecordEntry(&req)
	if err != nil {
		h.respondStockError(c, err, "Failed to record stock entry")
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock entry recorded successfully",
		"data":    entry,
	})
}

// GetEntries handles GET /stock/entries
func (h *StockHandler) GetEntries(c *gin.Context) {
	var req stock.EntryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	entries, total, err := h.stockService.GetEntries(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock entries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock entries retrieved successfully",
		"data": gin.H{
			"entries":    entries,
			"pagination": product.NewPagination(req.Page, req.Limit, total),
		},
	})
}

// GetEntry handles GET /stock/entries/:id
func (h *StockHandler) GetEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.stockService.GetEntry(id)
	if err != nil {
		h.respondStockError(c, err, "Failed to retrieve stock entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock entry retrieved successfully",
		"data":    entry,
	})
}

// ReviseEntry handles PUT /stock/entries/:id
func (h *StockHandler) ReviseEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req stock.ReviseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.stockService.ReviseEntry(id, &req)
	if err != nil {
		h.respondStockError(c, err, "Failed to revise stock entry")
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock entry revised successfully",
		"data":    entry,
	})
}

// RetireEntry handles DELETE /stock/entries/:id
func (h *StockHandler) RetireEntry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.stockService.RetireEntry(id); err != nil {
		h.respondStockError(c, err, "Failed to retire stock entry")
		return
	}
	h.invalidateDashboard(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock entry retired successfully",
	})
}

// GetLevels handles GET /stock/levels
func (h *StockHandler) GetLevels(c *gin.Context) {
	var req stock.LevelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	levels, total, err := h.stockService.GetLevels(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock levels",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock levels retrieved successfully",
		"data": gin.H{
			"levels":     levels,
			"pagination": product.NewPagination(req.Page, req.Limit, total),
		},
	})
}

// GetProductOnHand handles GET /stock/levels/product/:id
func (h *StockHandler) GetProductOnHand(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var branchID *uint
	if raw := c.Query("branch_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid branch ID",
			})
			return
		}
		v := uint(parsed)
		branchID = &v
	}

	total, err := h.stockService.TotalOnHand(id, branchID)
	if err != nil {
		h.respondStockError(c, err, "Failed to compute on-hand quantity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "On-hand quantity retrieved successfully",
		"data": gin.H{
			"product_id": id,
			"branch_id":  branchID,
			"on_hand":    total,
		},
	})
}

// invalidateDashboard drops the cached dashboard after a ledger write.
// Cache staleness is never worth failing the request over.
func (h *StockHandler) invalidateDashboard(c *gin.Context) {
	_ = h.reportService.InvalidateDashboard(c.Request.Context())
}

// respondStockError maps ledger errors onto HTTP statuses
func (h *StockHandler) respondStockError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, stock.ErrEntryNotFound),
		errors.Is(err, stock.ErrLevelNotFound),
		errors.Is(err, stock.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, stock.ErrBadReference),
		errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, stock.ErrEntryInactive),
		errors.Is(err, stock.ErrNegativeStock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, stock.ErrEntryConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// parseIDParam parses the :id path parameter, writing the error response
// itself when the value is not a positive integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID",
		})
		return 0, false
	}
	return uint(id), true
}
