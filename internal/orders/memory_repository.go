package orders

import (
	"context"
	"sync"

	"github.com/example/ruchitara/internal/models"
)

// MemoryRepository keeps orders and cart lines in process memory. It mirrors
// the transactional contract of GormRepository: Materialize either records
// the order and clears the cart, or leaves both untouched. Useful for unit
// tests.
type MemoryRepository struct {
	mu      sync.Mutex
	orders  map[string]models.Order
	carts   map[string][]models.CartItem
	nextID  uint
	failure error
}

// NewMemoryRepository constructs an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[string]models.Order),
		carts:  make(map[string][]models.CartItem),
		nextID: 1,
	}
}

// Materialize records the order and clears the owner's cart, or fails as a
// whole when a failure has been injected.
func (r *MemoryRepository) Materialize(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failure != nil {
		return r.failure
	}

	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].ID = r.nextID
		r.nextID++
		order.Items[i].OrderID = order.ID
	}

	r.orders[order.OrderNumber] = *order
	delete(r.carts, order.PhoneNumber)
	return nil
}

// OrderNumberTaken reports whether an order with the given number exists.
func (r *MemoryRepository) OrderNumberTaken(_ context.Context, number string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, taken := r.orders[number]
	return taken, nil
}

// SeedCart stores cart lines for a phone number.
func (r *MemoryRepository) SeedCart(phone string, items []models.CartItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[phone] = items
}

// SeedOrderNumber marks an order number as taken.
func (r *MemoryRepository) SeedOrderNumber(number string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[number] = models.Order{OrderNumber: number}
}

// FailWith makes every subsequent Materialize return err.
func (r *MemoryRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failure = err
}

// Cart returns the stored cart lines for a phone number.
func (r *MemoryRepository) Cart(phone string) []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.carts[phone]
}

// Order returns the stored order for a number.
func (r *MemoryRepository) Order(number string) (models.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[number]
	return order, ok
}

// Len returns how many orders have been recorded.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.orders)
}
