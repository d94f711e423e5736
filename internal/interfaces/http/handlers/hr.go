// internal/interfaces/http/handlers/hr.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/hr"
	"github.com/your-org/fertilizer-backend/internal/domain/product"
	"gorm.io/gorm"
)

// HRHandler handles department, position and employee endpoints
type HRHandler struct {
	hrService *hr.Service
	config    *config.Config
}

// NewHRHandler creates a new HR handler
func NewHRHandler(db *gorm.DB, cfg *config.Config) *HRHandler {
	return &HRHandler{
		hrService: hr.NewService(db, cfg),
		config:    cfg,
	}
}

// GetDepartments handles GET /hr/departments
func (h *HRHandler) GetDepartments(c *gin.Context) {
	departments, err := h.hrService.GetDepartments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Departments retrieved successfully",
		"data":    departments,
	})
}

// CreateDepartment handles POST /hr/departments
func (h *HRHandler) CreateDepartment(c *gin.Context) {
	var req hr.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	department, err := h.hrService.CreateDepartment(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Department created successfully",
		"data":    department,
	})
}

// UpdateDepartment handles PUT /hr/departments/:id
func (h *HRHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req hr.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	department, err := h.hrService.UpdateDepartment(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Department updated successfully",
		"data":    department,
	})
}

// DeleteDepartment handles DELETE /hr/departments/:id
func (h *HRHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.hrService.DeleteDepartment(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Department deleted successfully",
	})
}

// GetPositions handles GET /hr/positions
func (h *HRHandler) GetPositions(c *gin.Context) {
	positions, err := h.hrService.GetPositions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve positions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Positions retrieved successfully",
		"data":    positions,
	})
}

// CreatePosition handles POST /hr/positions
func (h *HRHandler) CreatePosition(c *gin.Context) {
	var req hr.PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	position, err := h.hrService.CreatePosition(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Position created successfully",
		"data":    position,
	})
}

// UpdatePosition handles PUT /hr/positions/:id
func (h *HRHandler) UpdatePosition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req hr.PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	position, err := h.hrService.UpdatePosition(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Position updated successfully",
		"data":    position,
	})
}

// DeletePosition handles DELETE /hr/positions/:id
func (h *HRHandler) DeletePosition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.hrService.DeletePosition(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Position deleted successfully",
	})
}

// GetEmployees handles GET /hr/employees
func (h *HRHandler) GetEmployees(c *gin.Context) {
	var req hr.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	employees, total, err := h.hrService.GetEmployees(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employees retrieved successfully",
		"data": gin.H{
			"employees":  employees,
			"pagination": product.NewPagination(req.Page, req.Limit, total),
		},
	})
}

// GetEmployee handles GET /hr/employees/:id
func (h *HRHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, err := h.hrService.GetEmployee(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee retrieved successfully",
		"data":    employee,
	})
}

// CreateEmployee handles POST /hr/employees
func (h *HRHandler) CreateEmployee(c *gin.Context) {
	var req hr.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	employee, err := h.hrService.CreateEmployee(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee created successfully",
		"data":    employee,
	})
}

// UpdateEmployee handles PUT /hr/employees/:id
func (h *HRHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req hr.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	employee, err := h.hrService.UpdateEmployee(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee updated successfully",
		"data":    employee,
	})
}

// DeleteEmployee handles DELETE /hr/employees/:id
func (h *HRHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.hrService.DeleteEmployee(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted successfully",
	})
}
