package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Shashikant-75555/swaadserve-demo/internal/models"
)

func menuItem(id, price string) models.MenuItem {
	return models.MenuItem{ID: id, Name: "item " + id, Price: decimal.RequireFromString(price)}
}

func TestCart_AddItem(t *testing.T) {
	c := NewCart()
	paneer := menuItem("m1", "349")
	naan := menuItem("m2", "49")

	c.AddItem(paneer, 1, "less spicy")
	c.AddItem(naan, 2, "")
	c.AddItem(paneer, 2, "overwritten? no") // same item again

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// Adding an existing item is additive in quantity, not in lines,
	// and leaves the original instructions alone.
	if lines[0].MenuItemID != "m1" || lines[0].Quantity != 3 {
		t.Errorf("line[0] = %s qty %d, want m1 qty 3", lines[0].MenuItemID, lines[0].Quantity)
	}
	if lines[0].Instructions != "less spicy" {
		t.Errorf("instructions = %q, want untouched %q", lines[0].Instructions, "less spicy")
	}
	// Insertion order is preserved.
	if lines[1].MenuItemID != "m2" {
		t.Errorf("line[1] = %s, want m2", lines[1].MenuItemID)
	}
	if c.TotalItems() != 5 {
		t.Errorf("TotalItems = %d, want 5", c.TotalItems())
	}
}

func TestCart_AddItem_NonPositiveQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(menuItem("m1", "100"), 0, "")
	c.AddItem(menuItem("m1", "100"), -3, "")

	if got := len(c.Lines()); got != 0 {
		t.Fatalf("expected no lines after non-positive adds, got %d", got)
	}
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart()
	c.AddItem(menuItem("m1", "100"), 1, "")
	c.AddItem(menuItem("m2", "200"), 1, "")

	c.RemoveItem("m1")
	c.RemoveItem("missing") // absent id is a no-op

	lines := c.Lines()
	if len(lines) != 1 || lines[0].MenuItemID != "m2" {
		t.Fatalf("expected only m2 to remain, got %+v", lines)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(menuItem("m1", "100"), 5, "")

	c.UpdateQuantity("m1", 2)
	if got := c.TotalItems(); got != 2 {
		t.Errorf("quantity after absolute update = %d, want 2", got)
	}

	c.UpdateQuantity("missing", 4) // absent id is a no-op
	if got := len(c.Lines()); got != 1 {
		t.Errorf("expected 1 line, got %d", got)
	}

	c.UpdateQuantity("m1", 0) // zero or less removes the line
	if got := len(c.Lines()); got != 0 {
		t.Errorf("expected line removed on quantity 0, got %d lines", got)
	}
}

func TestCart_UpdateInstructions(t *testing.T) {
	c := NewCart()
	c.AddItem(menuItem("m1", "100"), 1, "no onions")

	c.UpdateInstructions("m1", "extra raita")
	c.UpdateInstructions("missing", "ignored")

	if got := c.Lines()[0].Instructions; got != "extra raita" {
		t.Errorf("instructions = %q, want %q", got, "extra raita")
	}
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	c.AddItem(menuItem("m1", "100"), 2, "")
	c.Clear()

	if c.TotalItems() != 0 || len(c.Lines()) != 0 {
		t.Fatalf("expected empty cart after Clear")
	}
	if !c.Subtotal().Equal(decimal.Zero) {
		t.Errorf("Subtotal after Clear = %s, want 0", c.Subtotal())
	}
}

func TestCart_CapturedPriceIsImmutable(t *testing.T) {
	item := menuItem("m1", "349")
	c := NewCart()
	c.AddItem(item, 1, "")

	// A later menu price change must not affect the captured line.
	item.Price = decimal.RequireFromString("999")
	c.AddItem(item, 1, "")

	line := c.Lines()[0]
	if !line.UnitPrice.Equal(decimal.RequireFromString("349")) {
		t.Errorf("captured unit price = %s, want 349", line.UnitPrice)
	}
	if !c.Subtotal().Equal(decimal.RequireFromString("698")) {
		t.Errorf("subtotal = %s, want 698", c.Subtotal())
	}
}

// TestCart_TotalsReconcile drives the cart through a mixed mutation
// sequence and checks the invariants after every step: TotalItems
// matches the line quantities, no line has a non-positive quantity, and
// the money breakdown reconciles with the total.
func TestCart_TotalsReconcile(t *testing.T) {
	c := NewCart()
	steps := []func(){
		func() { c.AddItem(menuItem("m1", "349"), 1, "") },
		func() { c.AddItem(menuItem("m2", "249"), 1, "") },
		func() { c.AddItem(menuItem("m1", "349"), 4, "") },
		func() { c.UpdateQuantity("m1", 2) },
		func() { c.AddItem(menuItem("m3", "99.99"), 3, "") },
		func() { c.RemoveItem("m2") },
		func() { c.UpdateQuantity("m3", 0) },
		func() { c.AddItem(menuItem("m4", "0.10"), 1, "") },
	}

	for i, step := range steps {
		step()

		wantItems := 0
		for _, l := range c.Lines() {
			if l.Quantity <= 0 {
				t.Fatalf("step %d: line %s has quantity %d", i, l.MenuItemID, l.Quantity)
			}
			wantItems += l.Quantity
		}
		if got := c.TotalItems(); got != wantItems {
			t.Fatalf("step %d: TotalItems = %d, want %d", i, got, wantItems)
		}

		tot := c.Totals()
		sum := tot.Subtotal.Add(tot.TaxAmount).Add(tot.DeliveryCharge).Add(tot.PlatformFee)
		if !sum.Equal(tot.TotalAmount) {
			t.Fatalf("step %d: breakdown sums to %s, total is %s", i, sum, tot.TotalAmount)
		}
	}
}
