// internal/domain/hr/entity.go
package hr

import (
	"time"

	"github.com/your-org/fertilizer-backend/internal/domain/branch"
	"gorm.io/gorm"
)

// EmployeeStatus represents employment status
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusOnLeave  EmployeeStatus = "on_leave"
	EmployeeStatusResigned EmployeeStatus = "resigned"
)

// Department represents an organizational department
type Department struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Employees []Employee `gorm:"foreignKey:DepartmentID" json:"employees,omitempty"`
}

// Position represents a job position within a department
type Position struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null;size:100" json:"title"`
	DepartmentID *uint          `gorm:"index" json:"department_id"`
	BaseSalary   int64          `json:"base_salary"` // In cents
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// Employee represents a staff member
type Employee struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FirstName    string         `gorm:"not null;size:100" json:"first_name"`
	LastName     string         `gorm:"size:100" json:"last_name"`
	Email        string         `gorm:"size:100;index" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	BranchID     *uint          `gorm:"index" json:"branch_id"`
	DepartmentID *uint          `gorm:"index" json:"department_id"`
	PositionID   *uint          `gorm:"index" json:"position_id"`
	Salary       int64          `json:"salary"` // In cents
	HireDate     *time.Time     `json:"hire_date"`
	Status       EmployeeStatus `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch     *branch.Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Department *Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Position   *Position      `gorm:"foreignKey:PositionID" json:"position,omitempty"`
}

// TableName overrides
func (Department) TableName() string { return "departments" }
func (Position) TableName() string   { return "positions" }
func (Employee) TableName() string   { return "employees" }
