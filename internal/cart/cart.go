package cart

import (
	"sync"

	"github.com/create-and-design/storefront/internal/catalog"
	"github.com/create-and-design/storefront/internal/validation"
)

// Line is one (product, quantity) pair in the cart.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Cart is a session-scoped selection of products and quantities. Mutations
// are applied under a single lock so interleaved calls never lose updates.
// A cart holds at most one line per product id and no line quantity ever
// exceeds the product's stock; quantities above stock are clamped silently.
//
// The cart is not persisted; it is cleared by the caller only after a
// confirmed successful order creation, never before.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of p in the cart, merging with an existing line
// for the same product. A quantity <= 0 is a no-op.
func (c *Cart) Add(p catalog.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity = min(c.lines[i].Quantity+quantity, p.Stock)
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: min(quantity, p.Stock)})
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

// UpdateQuantity sets the quantity for productID. A quantity <= 0 removes
// the line; anything above the product's stock is clamped.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = min(quantity, c.lines[i].Product.Stock)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of quantity times unit price over all lines.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += float64(line.Quantity) * line.Product.Price
	}
	return total
}

// BuildOrderItems maps the current lines to checkout submission items.
func (c *Cart) BuildOrderItems() []validation.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]validation.OrderItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, validation.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}
	return items
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}
