package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Additional-Code/restaurants/internal/entity"
	"github.com/Additional-Code/restaurants/pkg/errorbank"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("budget", validBudget); err != nil {
		panic(err)
	}
	return v
}

func validBudget(fl validator.FieldLevel) bool {
	switch b := fl.Field().Interface().(type) {
	case entity.Budget:
		return b.Valid()
	case *entity.Budget:
		return b == nil || b.Valid()
	default:
		return false
	}
}

// Struct checks the validate tags of s. Failures are reported as an
// unprocessable AppError carrying one detail per offending field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errorbank.Internal("validation failed", errorbank.WithCause(err))
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = rule(fe)
	}
	return errorbank.Unprocessable("validation failed", errorbank.WithDetails(details))
}

func rule(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
