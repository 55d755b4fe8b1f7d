package care

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Instruction is the care text shown on every product of a category.
type Instruction struct {
	ID          string `json:"_id,omitempty"`
	Category    string `json:"category" validate:"required"`
	CareTitle   string `json:"careTitle" validate:"required,max=120"`
	CareContent string `json:"careContent" validate:"required"`
}

func (i Instruction) Key() string { return i.ID }

func (i Instruction) Validate() error { return validate.Struct(i) }
