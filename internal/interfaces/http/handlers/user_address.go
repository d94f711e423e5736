// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/fertilizer-backend/internal/config"
	"github.com/your-org/fertilizer-backend/internal/domain/user"
	"github.com/your-org/fertilizer-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// UserAddressHandler handles the authenticated user's addresses
type UserAddressHandler struct {
	userService *user.Service
	config      *config.Config
}

// NewUserAddressHandler creates a new address handler
func NewUserAddressHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *UserAddressHandler {
	return &UserAddressHandler{
		userService: user.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// GetAddresses handles GET /users/addresses
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	addresses, err := h.userService.GetAddresses(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    addresses,
	})
}

// CreateAddress handles POST /users/addresses
func (h *UserAddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address, err := h.userService.CreateAddress(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    address,
	})
}

// UpdateAddress handles PUT /users/addresses/:id
func (h *UserAddressHandler) UpdateAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	address, err := h.userService.UpdateAddress(userID, addressID, &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    address,
	})
}

// DeleteAddress handles DELETE /users/addresses/:id
func (h *UserAddressHandler) DeleteAddress(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	addressID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAddress(userID, addressID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}
