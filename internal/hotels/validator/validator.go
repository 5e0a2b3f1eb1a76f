package validator

import (
	"errors"
	"fmt"
	"strings"

	"staybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type HotelValidator struct {
	validate *validator.Validate
}

func NewHotelValidator() *HotelValidator {
	return &HotelValidator{validate: validator.New()}
}

func (v *HotelValidator) Validate(hotel *model.Hotel) error {
	err := v.validate.Struct(hotel)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	var messages []string
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fieldErr.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param()))
		case "e164":
			messages = append(messages, fmt.Sprintf("%s must be in E.164 format (e.g., +14155552671)", fieldErr.Field()))
		default:
			messages = append(messages, fieldErr.Error())
		}
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}
