// internal/domain/customer/service.go
package customer

import (
	"fmt"
	"strings"

	"github.com/your-org/fertilizer-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles customer business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CustomerListRequest represents customer list query parameters
type CustomerListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Search string `form:"search"`
}

// CreateCustomerRequest represents customer creation data
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Memo    string `json:"memo"`
}

// UpdateCustomerRequest represents customer update data
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Memo     *string `json:"memo"`
	IsActive *bool   `json:"is_active"`
}

// CreateCustomer creates a new customer
func (s *Service) CreateCustomer(req *CreateCustomerRequest) (*Customer, error) {
	customer := &Customer{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Memo:     req.Memo,
		IsActive: true,
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetCustomers retrieves customers with search and pagination
func (s *Service) GetCustomers(req *CustomerListRequest) ([]Customer, int64, error) {
	var customers []Customer
	var total int64

	query := s.db.Model(&Customer{})

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name ASC").Offset(offset).Limit(req.Limit).Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve customers: %w", err)
	}

	return customers, total, nil
}

// GetCustomer retrieves a customer by ID
func (s *Service) GetCustomer(id uint) (*Customer, error) {
	var customer Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, fmt.Errorf("customer not found")
	}
	return &customer, nil
}

// UpdateCustomer updates an existing customer
func (s *Service) UpdateCustomer(id uint, req *UpdateCustomerRequest) (*Customer, error) {
	var customer Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return nil, fmt.Errorf("customer not found")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Memo != nil {
		updates["memo"] = *req.Memo
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&customer).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update customer: %w", err)
		}
	}

	return &customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *Service) DeleteCustomer(id uint) error {
	var customer Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		return fmt.Errorf("customer not found")
	}

	if err := s.db.Delete(&customer).Error; err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}
