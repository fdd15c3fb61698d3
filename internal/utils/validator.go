// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("zipcode", validateZipCode)
	validate.RegisterValidation("phone", validatePhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateZipCode(fl validator.FieldLevel) bool {
	// Five digit postal code
	matched, _ := regexp.MatchString(`^[0-9]{5}$`, fl.Field().String())
	return matched
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.ReplaceAll(fl.Field().String(), "-", "")
	matched, _ := regexp.MatchString(`^0[0-9]{8,10}$`, phone)
	return matched
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "zipcode":
		return "Zip code must be 5 digits"
	case "phone":
		return "Invalid phone number format"
	default:
		return e.Field() + " is invalid"
	}
}
