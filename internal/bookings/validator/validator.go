package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"staybook/pkg/logger"
	"staybook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for check-in and check-out dates.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateRequest checks a booking request and returns the parsed date
// range. Dates are interpreted at midnight UTC.
func (v *BookingValidator) ValidateRequest(req *model.BookingRequest) (checkIn, checkOut time.Time, err error) {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return time.Time{}, time.Time{}, v.translateValidationErrors(validationErrs)
		}
		return time.Time{}, time.Time{}, err
	}

	checkIn, err = time.ParseInLocation(DateLayout, req.CheckInDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "CheckInDate", Message: "checkInDate must be in YYYY-MM-DD format"},
		}
	}

	checkOut, err = time.ParseInLocation(DateLayout, req.CheckOutDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "CheckOutDate", Message: "checkOutDate must be in YYYY-MM-DD format"},
		}
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ValidationErrors{
			ValidationError{Field: "CheckOutDate", Message: "checkOutDate must be after checkInDate"},
		}
	}

	return checkIn, checkOut, nil
}

// Validate checks a fully assembled booking before it is persisted.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !booking.CheckOutDate.After(booking.CheckInDate) {
		return ValidationErrors{
			ValidationError{
				Field:   "CheckOutDate",
				Message: "check_out_date must be after check_in_date",
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
