// internal/interfaces/http/handlers/report.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/report"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles dashboard and export endpoints
type ReportHandler struct {
	reportService *report.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: report.NewService(db, redisClient, cfg),
		config:        cfg,
	}
}

// GetDashboard handles GET /reports/dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	summary, err := h.reportService.GetDashboardSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard summary retrieved successfully",
		"data":    summary,
	})
}

// ExportStockLevels handles GET /reports/stock/export
func (h *ReportHandler) ExportStockLevels(c *gin.Context) {
	var req report.StockReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	buf, err := h.reportService.ExportStockLevels(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export stock levels"})
		return
	}

	filename := fmt.Sprintf("stock-levels-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportSales handles GET /reports/sales/export
func (h *ReportHandler) ExportSales(c *gin.Context) {
	var req report.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	buf, err := h.reportService.ExportSales(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export sales"})
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
