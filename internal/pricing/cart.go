package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

// Cart holds one guest session's selected items. A cart is owned by a
// single session and is not safe for concurrent use; each session gets
// its own instance. Mutation requests for lines that do not exist are
// absorbed as no-ops, the cart never returns errors.
type Cart struct {
	lines []Line
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds a menu item to the cart. If a line for the item already
// exists its quantity is increased and its instructions are left
// untouched; otherwise a new line is appended, preserving insertion
// order. The captured unit price is the menu price at add time and does
// not track later menu changes. Quantities below 1 are absorbed.
func (c *Cart) AddItem(item models.MenuItem, quantity int, instructions string) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	c.lines = append(c.lines, Line{
		MenuItemID:   item.ID,
		Name:         item.Name,
		UnitPrice:    item.Price,
		Quantity:     quantity,
		Instructions: instructions,
	})
}

// RemoveItem deletes the line for the given item if present
func (c *Cart) RemoveItem(menuItemID string) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(menuItemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(menuItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// UpdateInstructions replaces the free-text instructions on the line
func (c *Cart) UpdateInstructions(menuItemID, instructions string) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].Instructions = instructions
			return
		}
	}
}

// Clear empties the cart, as after checkout completion
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems returns the sum of all line quantities
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the pre-tax, pre-fee sum of the lines
func (c *Cart) Subtotal() decimal.Decimal {
	return c.Totals().Subtotal
}

// Totals derives the full money breakdown for the current cart state
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.lines)
}
