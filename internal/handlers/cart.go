package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/models"
	"github.com/example/ruchitara/internal/utils"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

type cartRow struct {
	ID          uint      `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	ProductID   uint      `json:"product_id"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	UnitPrice   float64   `json:"unit_price"`
	Weight      string    `json:"weight"`
	ImageURL    string    `json:"image_url"`
	Subtotal    float64   `json:"subtotal"`
}

// GetCart returns a user's cart lines joined with product details.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Params("phone"))

	var rows []cartRow
	err := h.db.Table("cart_items").
		Select("cart_items.id, cart_items.phone_number, cart_items.product_id, cart_items.quantity, cart_items.created_at, cart_items.updated_at, products.name, products.unit_price, products.weight, products.image_url, (cart_items.quantity * products.unit_price) as subtotal").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.phone_number = ?", phone).
		Scan(&rows).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "cart_items": rows})
}

type addToCartRequest struct {
	PhoneNumber string `json:"phone_number"`
	ProductID   uint   `json:"product_id"`
	Quantity    int    `json:"quantity"`
}

// AddToCart adds a product to the cart. An existing line for the same
// product absorbs the quantity instead of creating a second line.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) || req.ProductID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number and Product ID are required")
	}

	if req.Quantity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Quantity must be positive")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.db.First(&product, req.ProductID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	if !product.IsAvailable {
		return fiber.NewError(fiber.StatusBadRequest, "Product is not available")
	}

	var existing models.CartItem
	err := h.db.Where("phone_number = ? AND product_id = ?", phone, req.ProductID).
		First(&existing).Error
	switch err {
	case nil:
		updates := map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", req.Quantity),
			"updated_at": time.Now(),
		}
		if err := h.db.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
	case gorm.ErrRecordNotFound:
		item := models.CartItem{
			PhoneNumber: phone,
			ProductID:   req.ProductID,
			Quantity:    req.Quantity,
		}
		if err := h.db.Create(&item).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Added to cart successfully"})
}

type updateCartRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateCartItem overwrites a line's quantity; zero or below removes the
// line.
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Quantity == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Quantity is required")
	}

	if *req.Quantity <= 0 {
		if err := h.db.Delete(&models.CartItem{}, id).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "Cart updated successfully"})
	}

	updates := map[string]interface{}{
		"quantity":   *req.Quantity,
		"updated_at": time.Now(),
	}
	if err := h.db.Model(&models.CartItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Cart updated successfully"})
}

// RemoveCartItem deletes a cart line by id. Unknown ids succeed silently.
func (h *CartHandler) RemoveCartItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.CartItem{}, id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Item removed from cart"})
}
