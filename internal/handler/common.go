package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopkart/internal/auth"
	apperrors "shopkart/internal/errors"
)

// actorID returns the authenticated user's id from the session claims.
func actorID(c echo.Context) (uuid.UUID, error) {
	claims, err := auth.ClaimsFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := claims.ActorID()
	if err != nil {
		return uuid.Nil, apperrors.NewAuthError("authentication required")
	}
	return id, nil
}

// bindAndValidate decodes the request body and runs DTO validation,
// translating failures into the flat-message validation error shape.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, requestFieldMessage(fe))
			}
			return apperrors.NewValidationError(msgs...)
		}
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func requestFieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
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
