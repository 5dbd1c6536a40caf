package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/models"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

type productRow struct {
	models.Product
	CategoryName string `json:"category_name"`
}

// ListProducts returns available products, optionally filtered by category
// name and a case-insensitive name search.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	query := h.db.Table("products").
		Select("products.*, categories.name as category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.is_available = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("categories.name = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("products.name ILIKE ?", "%"+search+"%")
	}

	var rows []productRow
	if err := query.Order("products.name").Scan(&rows).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "products": rows})
}

// ListCategories returns all categories in display order.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Order("display_order").Find(&categories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "categories": categories})
}
