package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/models"
	"github.com/example/ruchitara/internal/utils"
)

// ProfileHandler manages user profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the profile for a phone number.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Params("phone"))

	var user models.User
	if err := h.db.Where("phone_number = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile completes a profile. Both name and email are required.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Params("phone"))

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name and email are required")
	}

	var user models.User
	if err := h.db.Where("phone_number = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	updates := map[string]interface{}{
		"name":       req.Name,
		"email":      req.Email,
		"updated_at": time.Now(),
	}
	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"message": "Profile updated successfully",
	})
}
