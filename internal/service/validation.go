package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// validateInput checks the validate tags of s. Each name in required must
// refer to a pointer field that is set and, for strings and slices, not empty.
func validateInput(s any, required ...string) error {
	details := map[string]any{}

	if len(required) > 0 {
		fields := fieldsByJSONName(s)
		for _, name := range required {
			if isMissing(fields[name]) {
				details[name] = requiredMessage(name)
			}
		}
	}

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.NewInternalError(err)
		}
		for _, fe := range verrs {
			if _, seen := details[fe.Field()]; !seen {
				details[fe.Field()] = fieldMessage(fe)
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return apperrors.NewValidationError("Validation errors", details)
}

func fieldsByJSONName(s any) map[string]reflect.Value {
	v := reflect.Indirect(reflect.ValueOf(s))
	t := v.Type()
	out := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		out[jsonFieldName(t.Field(i))] = v.Field(i)
	}
	return out
}

func isMissing(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice:
		return v.Len() == 0
	}
	return false
}

func requiredMessage(field string) string {
	return fmt.Sprintf("%s is required", field)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredMessage(fe.Field())
	case "notblank":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "email":
		return "Email must be valid"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", fe.Field())
	}
}
