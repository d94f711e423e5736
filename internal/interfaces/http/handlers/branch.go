// internal/interfaces/http/handlers/branch.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"gorm.io/gorm"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	branchService *branch.Service
	config        *config.Config
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(db *gorm.DB, cfg *config.Config) *BranchHandler {
	return &BranchHandler{
		branchService: branch.NewService(db, cfg),
		config:        cfg,
	}
}

// GetBranches handles GET /branches
func (h *BranchHandler) GetBranches(c *gin.Context) {
	branches, err := h.branchService.GetBranches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve branches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branches retrieved successfully",
		"data":    branches,
	})
}

// GetBranch handles GET /branches/:id
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	b, err := h.branchService.GetBranch(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch retrieved successfully",
		"data":    b,
	})
}

// GetDefaultBranch handles GET /branches/default
func (h *BranchHandler) GetDefaultBranch(c *gin.Context) {
	b, err := h.branchService.GetDefaultBranch()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Default branch retrieved successfully",
		"data":    b,
	})
}

// CreateBranch handles POST /branches
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req branch.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	b, err := h.branchService.CreateBranch(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Branch created successfully",
		"data":    b,
	})
}

// UpdateBranch handles PUT /branches/:id
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req branch.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	b, err := h.branchService.UpdateBranch(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch updated successfully",
		"data":    b,
	})
}

// DeleteBranch handles DELETE /branches/:id
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.branchService.DeleteBranch(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Branch deleted successfully",
	})
}
