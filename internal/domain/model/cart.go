package model

import "github.com/shopspring/decimal"

// CartLine is a catalog item with the chosen quantity.
type CartLine struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity"`
}

// Subtotal returns unit price multiplied by quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps lines in insertion order with at most one line per item.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// SetQuantity applies delta to the line of item and returns the updated cart.
// The receiver is left untouched. A missing item is inserted only for a
// positive delta, with quantity delta rather than 1, so two calls add up to
// max(0, q1+q2). A line whose quantity drops to zero is removed.
func (c Cart) SetQuantity(item CatalogItem, delta int) Cart {
	lines := make([]CartLine, 0, len(c.Lines)+1)
	found := false
	for _, line := range c.Lines {
		if line.Item.ID != item.ID {
			lines = append(lines, line)
			continue
		}
		found = true
		qty := line.Quantity + delta
		if qty <= 0 {
			continue
		}
		line.Quantity = qty
		lines = append(lines, line)
	}
	if !found && delta > 0 {
		lines = append(lines, CartLine{Item: item, Quantity: delta})
	}
	return Cart{Lines: lines}
}

// Quantity returns the chosen quantity of itemID, zero when absent.
func (c Cart) Quantity(itemID string) int {
	for _, line := range c.Lines {
		if line.Item.ID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal sums line subtotals.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clone returns a copy that shares no line storage with c.
func (c Cart) Clone() Cart {
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
