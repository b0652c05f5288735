package inventory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/apperr"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name ("name", "category").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("category", validCategory); err != nil {
		panic(fmt.Sprintf("register category validation: %v", err))
	}
	return v
}

func validCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseCategory(fl.Field().String())
	return ok
}

// validationError turns the first validator failure into an apperr.ValidationError.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return apperr.Validation(fe.Field(), "is required")
	case "category":
		return apperr.Validation(fe.Field(), "%q is not a known category", fe.Value())
	case "max":
		return apperr.Validation(fe.Field(), "must be at most %s characters", fe.Param())
	default:
		return apperr.Validation(fe.Field(), "failed %s validation", fe.Tag())
	}
}
