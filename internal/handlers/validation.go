package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validationErrorMap converts validator errors into field-scoped messages
// suitable for a JSON error response.
func validationErrorMap(err error) map[string]string {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["request"] = err.Error()
	}
	return errorMessages
}
