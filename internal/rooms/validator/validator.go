package validator

import (
	"errors"
	"fmt"
	"strings"

	"staybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

type RoomValidator struct {
	validate *validator.Validate
}

func NewRoomValidator() *RoomValidator {
	return &RoomValidator{validate: validator.New()}
}

func (v *RoomValidator) Validate(room *model.Room) error {
	err := v.validate.Struct(room)
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
		case "mongodb":
			messages = append(messages, fmt.Sprintf("%s must be a valid MongoDB ObjectID", fieldErr.Field()))
		default:
			messages = append(messages, fieldErr.Error())
		}
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}
