package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their json names so messages line up with the form.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateShipping requires every shipping field and a well-formed email.
// Surrounding whitespace does not count as a value.
func ValidateShipping(form models.ShippingForm) error {
	err := validate.Struct(trimForm(form))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "required"
		case "email":
			fields[fe.Field()] = "invalid email address"
		default:
			fields[fe.Field()] = "invalid"
		}
	}
	return &ValidationError{Fields: fields}
}

func trimForm(form models.ShippingForm) models.ShippingForm {
	return models.ShippingForm{
		FirstName:  strings.TrimSpace(form.FirstName),
		LastName:   strings.TrimSpace(form.LastName),
		Email:      strings.TrimSpace(form.Email),
		Phone:      strings.TrimSpace(form.Phone),
		Address:    strings.TrimSpace(form.Address),
		City:       strings.TrimSpace(form.City),
		State:      strings.TrimSpace(form.State),
		Occupation: strings.TrimSpace(form.Occupation),
	}
}
