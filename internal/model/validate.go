package model

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// imageURLPattern accepts URLs ending in an image extension, optionally
// followed by a query string.
var imageURLPattern = regexp.MustCompile(`(?i)^https?://\S+\.(jpg|jpeg|png|gif|webp)(\?\S*)?$`)

var entityValidator = newEntityValidator()

// Validator exposes the configured validator so request DTO validation shares
// the custom rules (image_url, decimal comparisons) with entity validation.
func Validator() *validator.Validate {
	return entityValidator
}

func newEntityValidator() *validator.Validate {
	v := validator.New()

	// Expose decimal.Decimal to numeric comparison tags (gt, gte, lte).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("image_url", func(fl validator.FieldLevel) bool {
		return imageURLPattern.MatchString(fl.Field().String())
	})

	return v
}

// FieldError describes a single schema violation on an entity field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the flat list of schema violations for one entity.
type FieldErrors []FieldError

// Messages returns the human-readable message list.
func (fe FieldErrors) Messages() []string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func validateEntity(entity interface{}) FieldErrors {
	err := entityValidator.Struct(entity)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Message: err.Error()}}
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		out = append(out, FieldError{Field: field, Message: fieldMessage(field, fe)})
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "image_url":
		return fmt.Sprintf("%s must be a URL ending in jpg, jpeg, png, gif or webp", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
