// internal/domain/hr/service.go
package hr

import (
	"fmt"
	"strings"
	"time"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles HR business logic (departments, positions, employees)
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new HR service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DEPARTMENTS

// DepartmentRequest represents department create/update data
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDepartment creates a new department
func (s *Service) CreateDepartment(req *DepartmentRequest) (*Department, error) {
	var existing Department
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("department '%s' already exists", req.Name)
	}

	department := &Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.db.Create(department).Error; err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return department, nil
}

// GetDepartments retrieves all departments
func (s *Service) GetDepartments() ([]Department, error) {
	var departments []Department
	if err := s.db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve departments: %w", err)
	}
	return departments, nil
}

// UpdateDepartment updates an existing department
func (s *Service) UpdateDepartment(id uint, req *DepartmentRequest) (*Department, error) {
	var department Department
	if err := s.db.First(&department, id).Error; err != nil {
		return nil, fmt.Errorf("department not found")
	}

	if err := s.db.Model(&department).Updates(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	return &department, nil
}

// DeleteDepartment soft-deletes a department without employees
func (s *Service) DeleteDepartment(id uint) error {
	var department Department
	if err := s.db.First(&department, id).Error; err != nil {
		return fmt.Errorf("department not found")
	}

	var count int64
	if err := s.db.Model(&Employee{}).Where("department_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check department employees: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete department with %d employees", count)
	}

	if err := s.db.Delete(&department).Error; err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	return nil
}

// POSITIONS

// PositionRequest represents position create/update data
type PositionRequest struct {
	Title        string `json:"title" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
	BaseSalary   int64  `json:"base_salary"`
}

// CreatePosition creates a new position
func (s *Service) CreatePosition(req *PositionRequest) (*Position, error) {
	if req.DepartmentID != nil {
		var department Department
		if err := s.db.First(&department, *req.DepartmentID).Error; err != nil {
			return nil, fmt.Errorf("department not found")
		}
	}

	position := &Position{
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
		BaseSalary:   req.BaseSalary,
	}

	if err := s.db.Create(position).Error; err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return position, nil
}

// GetPositions retrieves all positions
func (s *Service) GetPositions() ([]Position, error) {
	var positions []Position
	if err := s.db.Preload("Department").Order("title ASC").Find(&positions).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve positions: %w", err)
	}
	return positions, nil
}

// UpdatePosition updates an existing position
func (s *Service) UpdatePosition(id uint, req *PositionRequest) (*Position, error) {
	var position Position
	if err := s.db.First(&position, id).Error; err != nil {
		return nil, fmt.Errorf("position not found")
	}

	if req.DepartmentID != nil {
		var department Department
		if err := s.db.First(&department, *req.DepartmentID).Error; err != nil {
			return nil, fmt.Errorf("department not found")
		}
	}

	if err := s.db.Model(&position).Updates(map[string]interface{}{
		"title":         req.Title,
		"department_id": req.DepartmentID,
		"base_salary":   req.BaseSalary,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}

	return &position, nil
}

// DeletePosition soft-deletes a position
func (s *Service) DeletePosition(id uint) error {
	var position Position
	if err := s.db.First(&position, id).Error; err != nil {
		return fmt.Errorf("position not found")
	}

	var count int64
	if err := s.db.Model(&Employee{}).Where("position_id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check position employees: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete position with %d employees", count)
	}

	if err := s.db.Delete(&position).Error; err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	return nil
}

// EMPLOYEES

// EmployeeListRequest represents employee list query parameters
type EmployeeListRequest struct {
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=20"`
	Search       string `form:"search"`
	BranchID     uint   `form:"branch_id"`
	DepartmentID uint   `form:"department_id"`
	Status       string `form:"status"`
}

// CreateEmployeeRequest represents employee creation data
type CreateEmployeeRequest struct {
	FirstName    string     `json:"first_name" binding:"required"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	BranchID     *uint      `json:"branch_id"`
	DepartmentID *uint      `json:"department_id"`
	PositionID   *uint      `json:"position_id"`
	Salary       int64      `json:"salary"`
	HireDate     *time.Time `json:"hire_date"`
}

// UpdateEmployeeRequest represents employee update data
type UpdateEmployeeRequest struct {
	FirstName    *string         `json:"first_name"`
	LastName     *string         `json:"last_name"`
	Email        *string         `json:"email"`
	Phone        *string         `json:"phone"`
	BranchID     *uint           `json:"branch_id"`
	DepartmentID *uint           `json:"department_id"`
	PositionID   *uint           `json:"position_id"`
	Salary       *int64          `json:"salary"`
	HireDate     *time.Time      `json:"hire_date"`
	Status       *EmployeeStatus `json:"status"`
}

// CreateEmployee creates a new employee
func (s *Service) CreateEmployee(req *CreateEmployeeRequest) (*Employee, error) {
	if req.DepartmentID != nil {
		var department Department
		if err := s.db.First(&department, *req.DepartmentID).Error; err != nil {
			return nil, fmt.Errorf("department not found")
		}
	}
	if req.PositionID != nil {
		var position Position
		if err := s.db.First(&position, *req.PositionID).Error; err != nil {
			return nil, fmt.Errorf("position not found")
		}
	}

	employee := &Employee{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		BranchID:     req.BranchID,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Salary:       req.Salary,
		HireDate:     req.HireDate,
		Status:       EmployeeStatusActive,
	}

	if err := s.db.Create(employee).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return s.GetEmployee(employee.ID)
}

// GetEmployees retrieves employees with filters and pagination
func (s *Service) GetEmployees(req *EmployeeListRequest) ([]Employee, int64, error) {
	var employees []Employee
	var total int64

	query := s.db.Model(&Employee{}).
		Preload("Branch").
		Preload("Department").
		Preload("Position")

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", search, search, search)
	}
	if req.BranchID > 0 {
		query = query.Where("branch_id = ?", req.BranchID)
	}
	if req.DepartmentID > 0 {
		query = query.Where("department_id = ?", req.DepartmentID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("first_name ASC, last_name ASC").Offset(offset).Limit(req.Limit).Find(&employees).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve employees: %w", err)
	}

	return employees, total, nil
}

// GetEmployee retrieves an employee by ID
func (s *Service) GetEmployee(id uint) (*Employee, error) {
	var employee Employee
	if err := s.db.Preload("Branch").Preload("Department").Preload("Position").First(&employee, id).Error; err != nil {
		return nil, fmt.Errorf("employee not found")
	}
	return &employee, nil
}

// UpdateEmployee updates an existing employee with the supplied fields only
func (s *Service) UpdateEmployee(id uint, req *UpdateEmployeeRequest) (*Employee, error) {
	var employee Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		return nil, fmt.Errorf("employee not found")
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}
	if req.DepartmentID != nil {
		var department Department
		if err := s.db.First(&department, *req.DepartmentID).Error; err != nil {
			return nil, fmt.Errorf("department not found")
		}
		updates["department_id"] = *req.DepartmentID
	}
	if req.PositionID != nil {
		var position Position
		if err := s.db.First(&position, *req.PositionID).Error; err != nil {
			return nil, fmt.Errorf("position not found")
		}
		updates["position_id"] = *req.PositionID
	}
	if req.Salary != nil {
		updates["salary"] = *req.Salary
	}
	if req.HireDate != nil {
		updates["hire_date"] = *req.HireDate
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&employee).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update employee: %w", err)
		}
	}

	return s.GetEmployee(employee.ID)
}

// DeleteEmployee soft-deletes an employee
func (s *Service) DeleteEmployee(id uint) error {
	var employee Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		return fmt.Errorf("employee not found")
	}

	if err := s.db.Delete(&employee).Error; err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
