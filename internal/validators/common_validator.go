package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRegex        = regexp.MustCompile(`^\d{3,4}$`)
	emailRegex      = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("card_number", validateCardNumber)
	validate.RegisterValidation("card_expiry", validateCardExpiry)
	validate.RegisterValidation("cvv", validateCVV)
	validate.RegisterValidation("vehicle_type", validateVehicleType)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Fields returns a field -> message map for the response envelope.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "card_number":
		return "Card number must be 16 digits"
	case "card_expiry":
		return "Expiry must be in MM/YY format"
	case "cvv":
		return "CVV must be 3 or 4 digits"
	case "vehicle_type":
		return "Vehicle type must be economy, premium or xl"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateCardNumber(fl validator.FieldLevel) bool {
	number := strings.ReplaceAll(fl.Field().String(), " ", "")
	return cardNumberRegex.MatchString(number)
}

func validateCardExpiry(fl validator.FieldLevel) bool {
	return cardExpiryRegex.MatchString(fl.Field().String())
}

func validateCVV(fl validator.FieldLevel) bool {
	return cvvRegex.MatchString(fl.Field().String())
}

func validateVehicleType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "economy", "premium", "xl":
		return true
	}
	return false
}

// IsValidEmail applies the same loose pattern the signup form uses.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
