package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rl1809/storefront/internal/core/domain"
)

const (
	msgProductAdded    = "Product has been added successfully."
	msgProductUpdated  = "Product has been updated."
	msgProductDeleted  = "Product has been deleted."
	msgFillAllFields   = "Please fill in all fields before adding the product."
	msgQuantityError   = "Please select a quantity greater than 0."
	msgQuantitySet     = "Quantity selected."
	msgRemovedFromCart = "Item removed from the cart."
	msgInvalidBody     = "invalid request body"
	msgInternal        = "internal error"
)

var msgQuantityTooLarge = fmt.Sprintf("Please select a quantity of at most %d.", domain.MaxQuantity)

func addedToCartMessage(quantity int) string {
	if quantity > 1 {
		return fmt.Sprintf("%d items added to the cart.", quantity)
	}
	return fmt.Sprintf("%d item added to the cart.", quantity)
}

// userMessage turns a domain error into the notification shown to a user.
func userMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		switch verr.Reason {
		case domain.ReasonBlank:
			return msgFillAllFields
		case domain.ReasonNotPositive:
			return msgQuantityError
		case domain.ReasonTooLarge:
			return msgQuantityTooLarge
		}
		return verr.Error()
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return msgInternal
}

// flexText accepts a JSON string or a JSON number and keeps its text, so
// form fields can be posted either way and validated in one place.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("expected a string or a number")
	}
	*f = flexText(n)
	return nil
}

type cartLineView struct {
	domain.CartLine
	Total float64 `json:"total"`
}

type cartView struct {
	Items []cartLineView `json:"items"`
	Total float64        `json:"total"`
}

func newCartView(lines []domain.CartLine, total float64) cartView {
	items := make([]cartLineView, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartLineView{CartLine: l, Total: l.Total()})
	}
	return cartView{Items: items, Total: total}
}
