package service

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"github.com/rl1809/storefront/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateDraft checks every field of a new product and returns its price.
func validateDraft(d domain.ProductDraft) (float64, error) {
	if err := validate.Struct(d); err != nil {
		return 0, toValidationError(err)
	}
	return parsePrice(d.Price)
}

// validatePatch checks only the fields an edit supplies. The returned price
// is nil when the patch leaves the price alone.
func validatePatch(p domain.ProductPatch) (*float64, error) {
	d := p.Apply(domain.ProductDraft{})

	var fields []string
	if p.Name != nil {
		fields = append(fields, "Name")
	}
	if p.Brand != nil {
		fields = append(fields, "Brand")
	}
	if p.Price != nil {
		fields = append(fields, "Price")
	}
	if p.Link != nil {
		fields = append(fields, "Link")
	}
	if len(fields) == 0 {
		return nil, nil
	}

	if err := validate.StructPartial(d, fields...); err != nil {
		return nil, toValidationError(err)
	}
	if p.Price == nil {
		return nil, nil
	}

	price, err := parsePrice(*p.Price)
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func parsePrice(text string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0, domain.NewValidationError("price", "must be a number")
	}
	if d.IsNegative() {
		return 0, domain.NewValidationError("price", "must not be negative")
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, domain.NewValidationError("price", "is out of range")
	}
	return f, nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domain.NewValidationError(verrs[0].Field(), domain.ReasonBlank)
	}
	return err
}
