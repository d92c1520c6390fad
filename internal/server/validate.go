package server

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxIDLength bounds caller-supplied paste identifiers.
const MaxIDLength = 128

var pasteIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validator checks request payloads and path identifiers.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a [Validator] that reports fields by their JSON names and knows the
// "pasteid" rule: 1-128 characters from [A-Za-z0-9_-].
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("pasteid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) <= MaxIDLength && pasteIDPattern.MatchString(s)
	})

	return &Validator{v: v}
}

// ValidateStruct returns field name → message for every failed rule, or nil.
func (va *Validator) ValidateStruct(s any) map[string]string {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return map[string]string{"body": err.Error()}
	}

	errMap := make(map[string]string, len(valErrs))
	for _, e := range valErrs {
		errMap[e.Field()] = validationMessage(e)
	}
	return errMap
}

// ValidID reports whether id satisfies the "pasteid" rule.
func (va *Validator) ValidID(id string) bool {
	return va.v.Var(id, "pasteid") == nil
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
	case "pasteid":
		return fmt.Sprintf("%s must be 1-%d characters of letters, digits, '-' or '_'", e.Field(), MaxIDLength)
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
