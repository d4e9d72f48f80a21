// Package validation validates transfer objects and shapes field errors for responses.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Title is the title of every validation problem response.
const Title = "One or more validation errors occurred."

// Problem is the response body of a failed validation.
type Problem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

// Validator validates structs tagged with `validate`.
// Field names in errors are taken from the json tag.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		if name == "" {
			return fld.Name
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate returns the field errors of data, nil if it is valid.
func (v *Validator) Validate(data any) (map[string][]string, error) {
	err := v.validate.Struct(data)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err //nolint:wrapcheck
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}

	return fields, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("The %s field is not a valid e-mail address.", fe.Field())
	default:
		return fmt.Sprintf("The field %s is invalid (%s).", fe.Field(), fe.Tag())
	}
}
