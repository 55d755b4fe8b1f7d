package shipping

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Rate is the delivery fee charged for one city.
type Rate struct {
	ID          string          `json:"_id,omitempty"`
	City        string          `json:"city" validate:"required,max=80"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
}

func (r Rate) Key() string { return r.ID }

var errFee = errors.New("shipping fee cannot be negative")

func (r Rate) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.ShippingFee.IsNegative() {
		return errFee
	}
	return nil
}
