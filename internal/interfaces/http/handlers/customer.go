// internal/interfaces/http/handlers/customer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/customer"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"gorm.io/gorm"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *customer.Service
	config          *config.Config
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(db *gorm.DB, cfg *config.Config) *CustomerHandler {
	return &CustomerHandler{
		customerService: customer.NewService(db, cfg),
		config:          cfg,
	}
}

// GetCustomers handles GET /customers
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	var req customer.CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	customers, total, err := h.customerService.GetCustomers(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve customers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customers retrieved successfully",
		"data": gin.H{
			"customers":  customers,
			"pagination": product.NewPagination(req.Page, req.Limit, total),
		},
	})
}

// GetCustomer handles GET /customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cust, err := h.customerService.GetCustomer(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer retrieved successfully",
		"data":    cust,
	})
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cust, err := h.customerService.CreateCustomer(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customer created successfully",
		"data":    cust,
	})
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cust, err := h.customerService.UpdateCustomer(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer updated successfully",
		"data":    cust,
	})
}

// DeleteCustomer handles DELETE /customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}
