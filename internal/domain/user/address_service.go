// internal/domain/user/address_service.go
package user

import (
	"fmt"

	"gorm.io/gorm"
)

// AddressRequest represents address create/update data
type AddressRequest struct {
	Label        string `json:"label"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
	IsDefault    bool   `json:"is_default"`
}

// GetAddresses retrieves all addresses for a user
func (s *Service) GetAddresses(userID uint) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress adds a new address for a user
func (s *Service) CreateAddress(userID uint, req *AddressRequest) (*Address, error) {
	address := Address{
		UserID:       userID,
		Label:        req.Label,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		Region:       req.Region,
		PostalCode:   req.PostalCode,
		IsDefault:    req.IsDefault,
	}
	if address.Label == "" {
		address.Label = "home"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	return &address, nil
}

// UpdateAddress updates an existing address owned by the user
func (s *Service) UpdateAddress(userID, addressID uint, req *AddressRequest) (*Address, error) {
	var address Address
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		return nil, fmt.Errorf("address not found")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"label":         req.Label,
			"address_line1": req.AddressLine1,
			"address_line2": req.AddressLine2,
			"city":          req.City,
			"region":        req.Region,
			"postal_code":   req.PostalCode,
			"is_default":    req.IsDefault,
		}
		return tx.Model(&address).Updates(updates).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return &address, nil
}

// DeleteAddress removes an address owned by the user
func (s *Service) DeleteAddress(userID, addressID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("address not found")
	}
	return nil
}
