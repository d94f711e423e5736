// internal/domain/branch/service.go
package branch

import (
	"fmt"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles branch business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new branch service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateBranchRequest represents branch creation data
type CreateBranchRequest struct {
	Name      string `json:"name" binding:"required"`
	Code      string `json:"code" binding:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Region    string `json:"region"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsDefault bool   `json:"is_default"`
}

// UpdateBranchRequest represents branch update data
type UpdateBranchRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Region    *string `json:"region"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	IsActive  *bool   `json:"is_active"`
	IsDefault *bool   `json:"is_default"`
}

// CreateBranch creates a new branch
func (s *Service) CreateBranch(req *CreateBranchRequest) (*Branch, error) {
	// Check if code already exists
	var existing Branch
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("branch with code '%s' already exists", req.Code)
	}

	// If this is set as default, unset others
	if req.IsDefault {
		s.db.Model(&Branch{}).Where("is_default = ?", true).Update("is_default", false)
	}

	branch := &Branch{
		Name:      req.Name,
		Code:      req.Code,
		Address:   req.Address,
		City:      req.City,
		Region:    req.Region,
		Phone:     req.Phone,
		Email:     req.Email,
		IsDefault: req.IsDefault,
		IsActive:  true,
	}

	if err := s.db.Create(branch).Error; err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	return branch, nil
}

// GetBranches retrieves all active branches
func (s *Service) GetBranches() ([]Branch, error) {
	var branches []Branch
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve branches: %w", err)
	}
	return branches, nil
}

// GetBranch retrieves a branch by ID
func (s *Service) GetBranch(id uint) (*Branch, error) {
	var branch Branch
	if err := s.db.First(&branch, id).Error; err != nil {
		return nil, fmt.Errorf("branch not found")
	}
	return &branch, nil
}

// GetDefaultBranch gets the default branch
func (s *Service) GetDefaultBranch() (*Branch, error) {
	var branch Branch
	if err := s.db.Where("is_default = ? AND is_active = ?", true, true).First(&branch).Error; err != nil {
		return nil, fmt.Errorf("default branch not found")
	}
	return &branch, nil
}

// UpdateBranch updates an existing branch
func (s *Service) UpdateBranch(id uint, req *UpdateBranchRequest) (*Branch, error) {
	var branch Branch
	if err := s.db.First(&branch, id).Error; err != nil {
		return nil, fmt.Errorf("branch not found")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Region != nil {
		updates["region"] = *req.Region
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsDefault != nil && *req.IsDefault {
		s.db.Model(&Branch{}).Where("is_default = ?", true).Update("is_default", false)
		updates["is_default"] = true
	}

	if len(updates) > 0 {
		if err := s.db.Model(&branch).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update branch: %w", err)
		}
	}

	return &branch, nil
}

// DeleteBranch soft-deletes a branch
func (s *Service) DeleteBranch(id uint) error {
	var branch Branch
	if err := s.db.First(&branch, id).Error; err != nil {
		return fmt.Errorf("branch not found")
	}

	if branch.IsDefault {
		return fmt.Errorf("cannot delete the default branch")
	}

	if err := s.db.Delete(&branch).Error; err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	return nil
}
