package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
)

// Violations maps a JSON field name to one human-readable message.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Validator applies the `validate` struct tags of request types.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator reporting fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Check validates every field and collects all violations. The validator
// stops at the first failing rule of a field, so the required message always
// wins over length and range messages.
func (v *Validator) Check(req any) (Violations, error) {
	violations := Violations{}

	err := v.validate.Struct(req)
	if err == nil {
		return violations, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate request: %w", err)
	}

	for _, fe := range fieldErrs {
		if _, seen := violations[fe.Field()]; seen {
			continue
		}
		violations[fe.Field()] = message(fe)
	}

	return violations, nil
}

// Validate returns a validation error carrying every violation, or nil.
func (v *Validator) Validate(req any) error {
	violations, err := v.Check(req)
	if err != nil {
		return err
	}
	if !violations.Empty() {
		return apierrors.NewValidation(violations)
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Ptr {
			return "must not be null"
		}
		return "must not be blank"
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("size must be between 0 and %s", fe.Param())
	case "min":
		return fmt.Sprintf("size must be at least %s", fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "must be a well-formed email address"
	default:
		return "is invalid"
	}
}
