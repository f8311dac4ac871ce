package validator

import (
	// Go Internal Packages
	"fmt"
	"math"
	"reflect"
	"strings"

	// Local Packages
	errors "fraudwatch/errors"
	models "fraudwatch/models"

	// External Packages
	"github.com/go-playground/validator/v10"
)

// enumTags maps each custom tag to the parser of its closed vocabulary.
var enumTags = map[string]func(string) error{
	"payment_method":    func(s string) error { _, err := models.ParsePaymentMethod(s); return err },
	"transaction_type":  func(s string) error { _, err := models.ParseTransactionType(s); return err },
	"browser_type":      func(s string) error { _, err := models.ParseBrowserType(s); return err },
	"customer_gender":   func(s string) error { _, err := models.ParseGender(s); return err },
	"device_type":       func(s string) error { _, err := models.ParseDeviceType(s); return err },
	"customer_location": func(s string) error { _, err := models.ParseLocation(s); return err },
	"account_type":      func(s string) error { _, err := models.ParseAccountType(s); return err },
	"merchant_category": func(s string) error { _, err := models.ParseMerchantCategory(s); return err },
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := &Validator{validate: validator.New()}

	// Report fields by their json name, which is also the model's column name.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.validate.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})

	for tag, parse := range enumTags {
		parse := parse
		_ = v.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return parse(fl.Field().String()) == nil
		})
	}
	return v
}

// Validate checks i and returns a *errors.ValidationError listing every failing field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	ve := errors.ValidationErrs()
	for _, e := range validationErrors {
		ve.Add(e.Field(), message(e))
	}
	return ve.Err()
}

func message(e validator.FieldError) string {
	if parse, ok := enumTags[e.Tag()]; ok {
		if err := parse(fmt.Sprint(e.Value())); err != nil {
			return err.Error()
		}
	}
	switch e.Tag() {
	case "required":
		return "cannot be empty"
	case "finite":
		return "must be a finite number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(e.Param()), ", "))
	}
	return fmt.Sprintf("failed validation on '%s'", e.Tag())
}
