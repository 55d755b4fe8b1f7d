package discounts

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Kind string

const (
	Percentage Kind = "percentage"
	Fixed      Kind = "fixed"
)

type Scope string

const (
	Entire        Scope = "entire"
	ScopeCategory Scope = "categories"
	ScopeProducts Scope = "products"
)

type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

type Discount struct {
	ID         string          `json:"_id,omitempty"`
	Code       string          `json:"code" validate:"required,max=40"`
	Type       Kind            `json:"type" validate:"oneof=percentage fixed"`
	Value      decimal.Decimal `json:"value"`
	AppliesTo  Scope           `json:"appliesTo" validate:"oneof=entire categories products"`
	Categories []string        `json:"categories"`
	Products   []string        `json:"products"`
	Status     Status          `json:"status" validate:"oneof=active inactive"`
}

func New() Discount {
	return Discount{Type: Percentage, AppliesTo: Entire, Status: Active, Categories: []string{}, Products: []string{}}
}

func (d Discount) Key() string { return d.ID }

var (
	errValue      = errors.New("value must be greater than zero")
	errPercentage = errors.New("percentage cannot exceed 100")
)

func (d Discount) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	if !d.Value.IsPositive() {
		return errValue
	}
	if d.Type == Percentage && d.Value.GreaterThan(decimal.NewFromInt(100)) {
		return errPercentage
	}
	return nil
}

// Label renders the value the way staff read it: "20%" or "50.00 EGP".
func (d Discount) Label() string {
	if d.Type == Percentage {
		return d.Value.String() + "%"
	}
	return d.Value.StringFixed(2) + " EGP"
}
