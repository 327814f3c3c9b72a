// Package cart holds the in-progress sale for the active cashier screen.
// It is purely in-memory: one cart per terminal, no persistence.
package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/cafe-pos/internal/domain"
)

// Defaults stamped on a receipt when the cashier left the fields blank.
const (
	DefaultCustomerName = "Khách vãng lai"
	DefaultTable        = "Mang về"
)

// ErrEmptyCart is returned by Checkout when there is nothing to sell.
var ErrEmptyCart = errors.New("cart is empty")

// Line is one ordered item. Quantity is always at least 1: a line that would
// drop to zero is removed from the cart instead.
type Line struct {
	Item     domain.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Receipt is the checkout summary shown to the cashier for confirmation.
type Receipt struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Table        string          `json:"table"`
	Lines        []Line          `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	IssuedAt     time.Time       `json:"issued_at"`
}

// Cart is the working sale: ordered lines plus the customer and table
// fields. At most one line exists per menu item id. Every mutation rebuilds
// the line slice, so snapshots handed out earlier stay stable.
type Cart struct {
	mu           sync.Mutex
	lines        []Line
	customerName string
	table        string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem puts one unit of the item in the cart. An existing line for the
// same item id is incremented in place; otherwise a new line is appended.
func (c *Cart) AddItem(item domain.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Line, 0, len(c.lines)+1)
	found := false
	for _, line := range c.lines {
		if line.Item.ID == item.ID {
			line.Quantity++
			found = true
		}
		next = append(next, line)
	}
	if !found {
		next = append(next, Line{Item: item, Quantity: 1})
	}
	c.lines = next
}

// SetQuantity replaces a line's quantity, preserving line order. A quantity
// of zero or less removes the line; an unknown item id is a no-op.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		if line.Item.ID == itemID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		next = append(next, line)
	}
	c.lines = next
}

// RemoveItem deletes the line for the item id. Removing an absent line is a
// no-op.
func (c *Cart) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		if line.Item.ID == itemID {
			continue
		}
		next = append(next, line)
	}
	c.lines = next
}

// Clear empties the cart and resets the customer and table fields.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.customerName = ""
	c.table = ""
}

// SetCustomer records the free-text customer name and table designation.
func (c *Cart) SetCustomer(name, table string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerName = name
	c.table = table
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// CustomerName returns the free-text customer name.
func (c *Cart) CustomerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerName
}

// Table returns the table designation.
func (c *Cart) Table() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

// Total recomputes the sum of line subtotals. An empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Cart) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Checkout builds the confirmation receipt for the current sale and empties
// the cart. The cart itself does not talk to any payment backend.
func (c *Cart) Checkout() (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	receipt := &Receipt{
		OrderID:      uuid.NewString(),
		CustomerName: c.customerName,
		Table:        c.table,
		Lines:        c.lines,
		Total:        c.totalLocked(),
		IssuedAt:     time.Now(),
	}
	if receipt.CustomerName == "" {
		receipt.CustomerName = DefaultCustomerName
	}
	if receipt.Table == "" {
		receipt.Table = DefaultTable
	}

	c.lines = nil
	c.customerName = ""
	c.table = ""
	return receipt, nil
}
