// Package validation holds the request payload schemas and turns the first
// violation into a client-facing message.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/util"
)

const (
	tagDate = "isodate"
	tagDOB  = "dob"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation(tagDate, func(fl validator.FieldLevel) bool {
		_, err := util.ParseDate(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation(tagDOB, func(fl validator.FieldLevel) bool {
		_, err := util.ParseDOB(fl.Field().String())
		return err == nil
	})

	return &Validator{validate: v}
}

// lenient schemas ignore keys they do not declare.
type lenient interface {
	allowsUnknownFields()
}

// Decode parses a JSON body into dst and validates it. Unknown keys are
// rejected unless the schema is lenient.
func (v *Validator) Decode(body []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	if _, ok := dst.(lenient); !ok {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(dst); err != nil {
		return decodeError(err)
	}
	return v.Struct(dst)
}

// Struct validates s and reports the first failing field in declaration order.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.ValidationError("Invalid request body").WithCause(err)
	}

	first := fieldErrs[0]
	return apperrors.ValidationError(fieldMessage(first)).
		WithDetails(map[string]string{"field": first.Field()})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "email":
		return fmt.Sprintf("%q must be a valid email", fe.Field())
	case tagDate:
		return fmt.Sprintf("%q must be a valid date", fe.Field())
	case tagDOB:
		return fmt.Sprintf("%q must be a valid date of birth (DD-MM-YYYY)", fe.Field())
	case "max":
		return fmt.Sprintf("%q must be at most %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.ValidationError(fmt.Sprintf("%q must be a %s", typeErr.Field, typeErr.Type.Kind())).
			WithDetails(map[string]string{"field": typeErr.Field})
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		field = strings.Trim(field, `"`)
		return apperrors.ValidationError(fmt.Sprintf("%q is not allowed", field)).
			WithDetails(map[string]string{"field": field})
	}

	return apperrors.ValidationError("Invalid request body").WithCause(err)
}
