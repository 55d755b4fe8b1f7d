package products

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError is a client-side rejection; nothing was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// gate lists the checks in the order they are reported. Only the first
// failure is surfaced.
type gate struct {
	Files      int    `validate:"required_unless=Editing true"`
	Editing    bool   `validate:"-"`
	Category   string `validate:"required"`
	Type       Type   `validate:"oneof=Single Bundle"`
	Name       string `validate:"required_if=Type Single"`
	BundleName string `validate:"required_if=Type Bundle"`
}

var gateMessages = map[string]string{
	"Files":      "Please upload at least one image for new products.",
	"Category":   "Category is required.",
	"Type":       "Product type must be Single or Bundle.",
	"Name":       "Name (English) is required for Single products.",
	"BundleName": "Bundle Name is required for Bundles.",
}

// ValidateDraft runs the minimal pre-submit checks. The backend remains
// the authority; this only avoids requests that cannot succeed.
func ValidateDraft(d Draft, editing bool) error {
	in := gate{
		Files:      len(d.SelectedFiles),
		Editing:    editing,
		Category:   strings.TrimSpace(d.Category),
		Type:       d.Type,
		Name:       strings.TrimSpace(d.NameEN),
		BundleName: strings.TrimSpace(d.BundleName),
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	first := ve[0].StructField()
	return &ValidationError{Field: first, Message: gateMessages[first]}
}
