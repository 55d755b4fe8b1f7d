package crud

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages are the page texts a list shows after each operation. The
// *Failed texts are used when the backend gives no message of its own.
type Messages struct {
	LoadFailed   string
	Invalid      string
	Created      string
	Updated      string
	Deleted      string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// Simple fills Messages for an entity whose create and update failures
// share one text, like "Error saving discount".
func Simple(singular, plural string) Messages {
	return Messages{
		LoadFailed:   "Error loading " + plural,
		Created:      upperFirst(singular) + " created successfully",
		Updated:      upperFirst(singular) + " updated successfully",
		Deleted:      upperFirst(singular) + " deleted successfully",
		CreateFailed: "Error saving " + singular,
		UpdateFailed: "Error saving " + singular,
		DeleteFailed: "Error deleting " + singular,
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FieldErrors turns validator failures into field -> message pairs.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}
	if err != nil {
		out["_"] = upperFirst(err.Error()) + "."
	}
	return out
}

// describeInvalid joins field errors into one page line, in a stable order.
func describeInvalid(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return upperFirst(err.Error()) + "."
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fe.Field()+": "+messageForTag(fe.Tag(), fe.Param()))
	}
	return strings.Join(parts, " ")
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "max":
		return "Must be at most " + param + " characters."
	case "min":
		return "Must be at least " + param + " characters."
	case "gte":
		return "Must be " + param + " or more."
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	default:
		return "Invalid value."
	}
}
