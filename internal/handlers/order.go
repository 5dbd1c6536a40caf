package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/models"
	"github.com/example/ruchitara/internal/orders"
	"github.com/example/ruchitara/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db     *gorm.DB
	orders *orders.Service
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, svc *orders.Service) *OrderHandler {
	return &OrderHandler{db: db, orders: svc}
}

// ListOrders returns a user's orders, newest first, with their items.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Params("phone"))

	var list []models.Order
	if err := h.db.Preload("Items").
		Where("phone_number = ?", phone).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "orders": list})
}

type orderItemRequest struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createOrderRequest struct {
	PhoneNumber     string             `json:"phone_number"`
	Items           []orderItemRequest `json:"items"`
	DeliveryAddress string             `json:"delivery_address"`
	PaymentMethod   string             `json:"payment_method"`
}

// CreateOrder materializes the submitted items into an order and clears the
// user's cart.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	phone := utils.NormalizePhone(req.PhoneNumber)
	if !utils.IsValidPhone(phone) || len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number and items are required")
	}

	input := orders.CreateOrderInput{
		PhoneNumber:     phone,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, orders.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.orders.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNoItems):
			return fiber.NewError(fiber.StatusBadRequest, "Phone number and items are required")
		case errors.Is(err, orders.ErrNoAddress):
			return fiber.NewError(fiber.StatusBadRequest, "Delivery address is required")
		}
		return err
	}

	// The minimal contract returns the order without its lines; clients
	// re-fetch items from the orders listing.
	resp := *order
	resp.Items = nil

	return c.JSON(fiber.Map{
		"success": true,
		"order":   resp,
		"message": "Order placed successfully",
	})
}
