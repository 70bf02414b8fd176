package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"rentalmanager/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// optionalValue exposes the value held by an Optional to the validator. Unset
// and cleared fields validate as absent.
func optionalValue[V any](field reflect.Value) interface{} {
	o, ok := field.Interface().(models.Optional[V])
	if !ok {
		return nil
	}
	if v, set := o.Get(); set {
		return v
	}
	return nil
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		validate.RegisterCustomTypeFunc(optionalValue[int64], models.Optional[int64]{})
		validate.RegisterCustomTypeFunc(optionalValue[float64], models.Optional[float64]{})
		validate.RegisterCustomTypeFunc(optionalValue[string], models.Optional[string]{})
		validate.RegisterCustomTypeFunc(optionalValue[time.Time], models.Optional[time.Time]{})
		validate.RegisterCustomTypeFunc(optionalValue[models.Gender], models.Optional[models.Gender]{})
	})
	return validate
}

// ValidateInput checks a create or update input against its validate tags and
// reports the first violation as a ValidationError.
func ValidateInput(entity string, input any) error {
	err := validatorInstance().Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		if fe.Param() != "" {
			reason = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
		}
		return newError(entity, fe.Field(), reason)
	}
	return newError(entity, "", err.Error())
}

// IsEmail is a decoder check for e-mail formatted strings.
func IsEmail(s string) error {
	if err := validatorInstance().Var(s, "email"); err != nil {
		return fmt.Errorf("invalid email %q", s)
	}
	return nil
}
