package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultQuantity = 1
	// MaxQuantity bounds a single purchase and the quantity of any cart line.
	MaxQuantity = 9999
)

// ValidateQuantity rejects quantities outside 1..MaxQuantity.
func ValidateQuantity(q int) error {
	if q <= 0 {
		return NewValidationError("quantity", ReasonNotPositive)
	}
	if q > MaxQuantity {
		return NewValidationError("quantity", ReasonTooLarge)
	}
	return nil
}

// ParseQuantity reads a quantity typed by a user. Blank input selects the
// default quantity. Range is not checked here; see ValidateQuantity.
func ParseQuantity(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultQuantity, nil
	}
	q, err := strconv.Atoi(text)
	if err != nil {
		return 0, NewValidationError("quantity", "must be a whole number")
	}
	return q, nil
}

// QuantitySelection tracks the pending purchase quantity per product.
type QuantitySelection map[ID]int

// Quantity returns the pending quantity, or DefaultQuantity when none (or zero) is set.
func (s QuantitySelection) Quantity(id ID) int {
	if q := s[id]; q != 0 {
		return q
	}
	return DefaultQuantity
}

func (s QuantitySelection) Set(id ID, quantity int) {
	s[id] = quantity
}

func (s QuantitySelection) Reset(id ID) {
	delete(s, id)
}
