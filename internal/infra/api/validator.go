package api

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
)

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return model.IsPhone(fl.Field().String())
	})
	validate.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return model.IsGSTNumber(fl.Field().String())
	})
	validate.RegisterValidation("dataimage", func(fl validator.FieldLevel) bool {
		return model.ImagePayload(fl.Field().String()).LooksValid()
	})

	return &Validator{validate: validate}
}

// Validate checks struct tags and reports every failing field as an Issue.
func (v *Validator) Validate(i interface{}) *domain.ValidationError {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	out := &domain.ValidationError{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out.Add("", "invalid", err.Error())
	}
	for _, fe := range verrs {
		code, msg := describe(fe)
		out.Add(issuePath(fe.Namespace()), code, msg)
	}
	return out
}

// issuePath turns "req.products[3].mrp" into "products.3.mrp".
func issuePath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return indexRe.ReplaceAllString(ns, ".$1")
}

func describe(fe validator.FieldError) (code, msg string) {
	switch fe.Tag() {
	case "required", "notblank":
		return "too_small", "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "too_small", fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "too_small", fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return "too_big", fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "too_big", fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return "invalid_length", fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "phone":
		return "invalid_string", "must be exactly 10 digits"
	case "gstin":
		return "invalid_string", "must contain only letters and digits"
	case "dataimage":
		return "invalid_string", "must be an image data URL"
	default:
		return "invalid", fmt.Sprintf("failed %s", fe.Tag())
	}
}
