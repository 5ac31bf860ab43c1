package trip

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("notblank", validateNotBlank)
	validate.RegisterValidation("travel_style", enumValidator(ParseTravelStyle))
	validate.RegisterValidation("food_preference", enumValidator(ParseFoodPreference))
	validate.RegisterValidation("accommodation", enumValidator(ParseAccommodation))

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func enumValidator[T ~string](parse func(string) (T, bool)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, ok := parse(fl.Field().String())
		return ok
	}
}

type FieldError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

// ValidationError reports why a Form could not become a Request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid trip request: " + strings.Join(msgs, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func validateForm(f Form) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range validatorErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return out
}

func getErrorMessage(err validator.FieldError) string {
	numeric := err.Kind() != reflect.String
	switch err.Tag() {
	case "notblank":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", err.Field(), err.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters long", err.Field(), err.Param())
	case "travel_style":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), joinLabels(TravelStyles))
	case "food_preference":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), joinLabels(FoodPreferences))
	case "accommodation":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), joinLabels(Accommodations))
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func joinLabels[T ~string](opts []T) string {
	s := make([]string, len(opts))
	for i, o := range opts {
		s[i] = string(o)
	}
	return strings.Join(s, ", ")
}
