package dto

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation is matched by every FieldErrors.
	ErrValidation = errors.New("validation failed")

	// ErrBinding marks a body that could not be decoded.
	ErrBinding = errors.New("binding failed")
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under the name the client sent: form tag, then json tag.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"form", "json"} {
			switch name, _, _ := strings.Cut(f.Tag.Get(key), ","); name {
			case "-":
				return ""
			case "":
				continue
			default:
				return name
			}
		}

		return f.Name
	})

	if err := v.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	return v
}

// FieldErrors maps a request field to what is wrong with it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, field := range slices.Sorted(maps.Keys(fe)) {
		parts = append(parts, field+": "+fe[field])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Is(target error) bool { return target == ErrValidation }

// Validate checks v's validate tags. Rule violations come back as FieldErrors.
func Validate(v any) error {
	err := requestValidator.Struct(v)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return fmt.Errorf("validating %T: %w", v, err)
	}

	out := make(FieldErrors, len(violations))
	for _, fe := range violations {
		out[fe.Field()] = describe(fe)
	}

	return out
}

// BindAndValidate decodes the body by its Content-Type (form or JSON) and
// validates the result.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBind(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validate(v)
}

// ValidationErrors returns the field messages carried by err, or an empty map.
func ValidationErrors(err error) map[string]string {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return map[string]string{}
	}

	return maps.Clone(fe)
}

// IsValidationError reports whether err carries field errors.
func IsValidationError(err error) bool {
	var fe FieldErrors
	return errors.As(err, &fe)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notempty":
		return "must not be empty"
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	}

	return "failed validation: " + fe.Tag()
}
