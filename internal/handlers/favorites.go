package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/models"
	"github.com/example/ruchitara/internal/utils"
)

// FavoriteHandler manages favorite endpoints.
type FavoriteHandler struct {
	db *gorm.DB
}

// NewFavoriteHandler constructs FavoriteHandler.
func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

type favoriteRow struct {
	ID          uint      `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	ProductID   uint      `json:"product_id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	UnitPrice   float64   `json:"unit_price"`
	Weight      string    `json:"weight"`
	ImageURL    string    `json:"image_url"`
	CategoryID  *uint     `json:"category_id"`
}

// ListFavorites returns a user's favorites joined with product details.
func (h *FavoriteHandler) ListFavorites(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Params("phone"))

	var rows []favoriteRow
	err := h.db.Table("favorites").
		Select("favorites.id, favorites.phone_number, favorites.product_id, favorites.created_at, products.name, products.unit_price, products.weight, products.image_url, products.category_id").
		Joins("JOIN products ON products.id = favorites.product_id").
		Where("favorites.phone_number = ?", phone).
		Order("favorites.created_at desc").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "favorites": rows})
}

type addFavoriteRequest struct {
	PhoneNumber string `json:"phone_number"`
	ProductID   uint   `json:"product_id"`
}

// AddFavorite marks a product as favorite. Duplicate pairs are rejected.
func (h *FavoriteHandler) AddFavorite(c *fiber.Ctx) error {
	var req addFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) || req.ProductID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number and Product ID are required")
	}

	var existing models.Favorite
	err := h.db.Where("phone_number = ? AND product_id = ?", phone, req.ProductID).
		First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Product already in favorites")
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	favorite := models.Favorite{PhoneNumber: phone, ProductID: req.ProductID}
	if err := h.db.Create(&favorite).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Added to favorites"})
}

// RemoveFavorite deletes a favorite by its id. Unknown ids succeed silently.
func (h *FavoriteHandler) RemoveFavorite(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Favorite{}, id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Removed from favorites"})
}
