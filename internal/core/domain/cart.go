package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// CartLine is one aggregated cart entry. Name and Price are copied from the
// product when the line is created and are not refreshed by later edits.
type CartLine struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Total is price times quantity, computed in decimal to avoid float drift.
func (l CartLine) Total() float64 {
	return l.total().InexactFloat64()
}

func (l CartLine) total() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an immutable sequence of cart lines, at most one per product id.
type Cart struct {
	lines []CartLine
}

func NewCart(lines []CartLine) Cart {
	return Cart{lines: slices.Clone(lines)}
}

func (c Cart) Lines() []CartLine {
	if c.lines == nil {
		return []CartLine{}
	}
	return slices.Clone(c.lines)
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) Find(id ID) (CartLine, bool) {
	i := c.index(id)
	if i < 0 {
		return CartLine{}, false
	}
	return c.lines[i], true
}

// Add merges quantity into the line for p, or appends a snapshot line when
// p is not in the cart yet.
func (c Cart) Add(p Product, quantity int) (Cart, CartLine, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return c, CartLine{}, err
	}

	next := slices.Clone(c.lines)
	if i := c.index(p.ID); i >= 0 {
		if next[i].Quantity > MaxQuantity-quantity {
			return c, CartLine{}, NewValidationError("quantity", ReasonTooLarge)
		}
		next[i].Quantity += quantity
		return Cart{lines: next}, next[i], nil
	}

	line := CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: quantity,
	}
	return Cart{lines: append(next, line)}, line, nil
}

func (c Cart) Remove(id ID) (Cart, bool) {
	if c.index(id) < 0 {
		return c, false
	}
	next := slices.DeleteFunc(slices.Clone(c.lines), func(l CartLine) bool {
		return l.ID == id
	})
	return Cart{lines: next}, true
}

// Total sums every line total.
func (c Cart) Total() float64 {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.total())
	}
	return sum.InexactFloat64()
}

func (c Cart) index(id ID) int {
	return slices.IndexFunc(c.lines, func(l CartLine) bool {
		return l.ID == id
	})
}
