package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cryptoprivacy/storefront-api/internal/pkg/chain"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	validate.RegisterValidation("evm_address", func(fl validator.FieldLevel) bool {
		return chain.IsAddress(fl.Field().String())
	})

	validate.RegisterValidation("pay_currency", func(fl validator.FieldLevel) bool {
		return chain.IsSupported(fl.Field().String())
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "evm_address":
			errors[field] = "Invalid wallet address"
		case "pay_currency":
			errors[field] = "Invalid currency. Must be: ETH, MATIC or POL"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// HasRequiredErrors reports whether any field failed the required tag.
func HasRequiredErrors(fieldErrors map[string]string) bool {
	for _, msg := range fieldErrors {
		if msg == "This field is required" {
			return true
		}
	}
	return false
}
