// Package orders converts submitted line items into durable order records.
// The multi-row write (order, snapshot items, cart clear) is the one place in
// the system where atomicity is a hard requirement; it lives behind the
// Repository interface so the write can run inside a database transaction.
package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/example/ruchitara/internal/models"
)

var (
	ErrNoItems         = errors.New("at least one item is required")
	ErrNoAddress       = errors.New("delivery address is required")
	ErrNumberExhausted = errors.New("could not allocate a unique order number")
)

const (
	defaultPaymentMethod = "Cash on Delivery"
	numberPrefix         = "ORD"
	numberAttempts       = 5
)

// LineItem is a caller-submitted order line. Unit prices are taken as
// submitted and snapshotted; they are not re-checked against the catalog.
type LineItem struct {
	ProductID uint
	Name      string
	Quantity  int
	UnitPrice float64
}

// CreateOrderInput carries everything needed to materialize an order.
type CreateOrderInput struct {
	PhoneNumber     string
	Items           []LineItem
	DeliveryAddress string
	PaymentMethod   string
}

// Repository persists orders. Materialize must insert the order with its
// items and clear the user's cart as one atomic unit.
type Repository interface {
	Materialize(ctx context.Context, order *models.Order) error
	OrderNumberTaken(ctx context.Context, number string) (bool, error)
}

// Service materializes orders.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, snapshots the submitted items into an order
// with a fresh order number and persists it atomically together with the
// cart clear. The returned order carries its items.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	if in.DeliveryAddress == "" {
		return nil, ErrNoAddress
	}

	payment := in.PaymentMethod
	if payment == "" {
		payment = defaultPaymentMethod
	}

	number, err := s.allocateNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:     number,
		PhoneNumber:     in.PhoneNumber,
		Status:          models.OrderStatusPending,
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   payment,
	}

	var total float64
	for _, item := range in.Items {
		subtotal := float64(item.Quantity) * item.UnitPrice
		total += subtotal
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    subtotal,
		})
	}
	order.TotalAmount = total

	if err := s.repo.Materialize(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// allocateNumber draws random order numbers until one is free. The unique
// index on order_number remains the backstop for the race between the check
// and the insert.
func (s *Service) allocateNumber(ctx context.Context) (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number, err := randomNumber()
		if err != nil {
			return "", err
		}

		taken, err := s.repo.OrderNumberTaken(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	return "", ErrNumberExhausted
}

func randomNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", numberPrefix, n.Int64()+10000), nil
}
