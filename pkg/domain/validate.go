package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields under their persisted JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCustomer checks the field rules of a customer about to be stored.
func ValidateCustomer(c Customer) error {
	return structError(EntityCustomer, c.ID, validate.Struct(c))
}

// ValidateHotel checks the field rules of a hotel about to be stored.
func ValidateHotel(h Hotel) error {
	if err := structError(EntityHotel, h.ID, validate.Struct(h)); err != nil {
		return err
	}
	if h.RoomsAvailable > h.Rooms {
		return Invalid(EntityHotel, h.ID, fmt.Sprintf("rooms_available %d exceeds rooms %d", h.RoomsAvailable, h.Rooms))
	}
	return nil
}

// Validate checks every field present in the update.
func (u CustomerUpdate) Validate(id string) error {
	if u.Name != nil {
		if err := validate.Var(*u.Name, "required"); err != nil {
			return Invalid(EntityCustomer, id, "name must be a non-empty string")
		}
	}
	if u.Email != nil {
		if err := validate.Var(*u.Email, "required,contains=@"); err != nil {
			return Invalid(EntityCustomer, id, "invalid email format, must contain '@'")
		}
	}
	return nil
}

// Validate checks every field present in the update.
func (u HotelUpdate) Validate(id string) error {
	if u.Name != nil {
		if err := validate.Var(*u.Name, "required"); err != nil {
			return Invalid(EntityHotel, id, "name must be a non-empty string")
		}
	}
	if u.Rooms != nil {
		if err := validate.Var(*u.Rooms, "min=0"); err != nil {
			return Invalid(EntityHotel, id, "rooms must be a non-negative integer")
		}
	}
	return nil
}

func structError(entity EntityType, id string, err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Invalid(entity, id, err.Error())
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describe(fe))
	}
	return Invalid(entity, id, strings.Join(details, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " must be a non-empty string"
	case "contains":
		return fmt.Sprintf("invalid %s format, must contain '%s'", field, fe.Param())
	case "min":
		return field + " must be a non-negative integer"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
