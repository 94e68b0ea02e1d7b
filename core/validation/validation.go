package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"traceability/core/errs"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Error lists the fields that failed, mapped to the failing rule.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s is %s", k, describe(e.Fields[k])))
	}
	return fmt.Sprintf("%s: %s", errs.ErrValidation, strings.Join(parts, ", "))
}

// Unwrap makes errors.Is(err, errs.ErrValidation) hold.
func (e *Error) Unwrap() error {
	return errs.ErrValidation
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return errs.Validation("%v", err)
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fe.Tag()
	}
	return &Error{Fields: fields}
}

func describe(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required"
	case "max":
		return "too long"
	default:
		return "invalid (" + tag + ")"
	}
}
