// internal/domain/user/admin_service.go
package user

import (
	"fmt"
)

// UserListRequest represents account list query parameters
type UserListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	Search   string `form:"search"`
	Role     string `form:"role"`
	IsActive *bool  `form:"is_active"`
}

// UpdateUserRequest represents admin updates to an account
type UpdateUserRequest struct {
	Role     *Role `json:"role"`
	IsActive *bool `json:"is_active"`
}

// GetUsers retrieves accounts with filters and pagination (admin only)
func (s *Service) GetUsers(req *UserListRequest) ([]User, int64, error) {
	var users []User
	var total int64

	query := s.db.Model(&User{})

	if req.Search != "" {
		searchTerm := "%" + req.Search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			searchTerm, searchTerm, searchTerm)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve users: %w", err)
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, total, nil
}

// UpdateUser changes an account's role or active flag (admin only)
func (s *Service) UpdateUser(id uint, req *UpdateUserRequest) (*User, error) {
	var target User
	if err := s.db.First(&target, id).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}

	updates := make(map[string]interface{})
	if req.Role != nil {
		switch *req.Role {
		case RoleAdmin, RoleManager, RoleStaff:
			updates["role"] = *req.Role
		default:
			return nil, fmt.Errorf("unknown role: %s", *req.Role)
		}
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&target).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	target.Password = ""
	return &target, nil
}
