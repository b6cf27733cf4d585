package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lalith-99/vidora/internal/apperr"
)

var registerOnce sync.Once

// RegisterValidators installs the custom tags on gin's validator and
// makes validation errors report JSON/form field names. Safe to call
// more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		// Registration only fails for an empty tag name.
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

// notBlank rejects strings that are empty after trimming. "required"
// alone lets "   " through.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return true
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// bindError turns a gin binding failure into an InvalidInput error with
// a readable message.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.InvalidInput("Invalid request body")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return apperr.InvalidInput(fe.Field() + " is required")
	case "email":
		return apperr.InvalidInput(fe.Field() + " must be a valid email")
	case "min":
		return apperr.InvalidInput(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	case "max":
		return apperr.InvalidInput(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return apperr.InvalidInput(fe.Field() + " is invalid")
	}
}
