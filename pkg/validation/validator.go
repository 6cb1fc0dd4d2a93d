package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// looseEmail accepts anything shaped like a@b.c; deliverability is not checked.
var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

var initOnce sync.Once

// Init configures the global validator used by Gin's binding.
// - Uses form (then JSON) tag names in errors.
// - Registers the notblank and looseemail tags.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return looseEmail.MatchString(fl.Field().String())
		})
	})
}

// Struct validates obj against its binding tags with the same engine Gin uses.
func Struct(obj any) error {
	Init()
	return binding.Validator.ValidateStruct(obj)
}

// IsValidationError reports whether err carries field validation failures.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			if _, seen := out[field]; seen {
				continue
			}
			out[field] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

// fieldMessages holds the wording users see for each form field.
var fieldMessages = map[string]map[string]string{
	"firstName":        {"notblank": "El nombre es requerido"},
	"paternalLastName": {"notblank": "El apellido paterno es requerido"},
	"maternalLastName": {"notblank": "El apellido materno es requerido"},
	"email": {
		"notblank":   "El correo electrónico es requerido",
		"looseemail": "El formato del correo es inválido",
	},
	"ci": {"notblank": "El CI es requerido"},
}

func formatFieldError(fe validator.FieldError) string {
	if byTag, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}

	tag := fe.Tag()
	param := fe.Param()
	switch tag {
	case "required", "notblank":
		return "es requerido"
	case "email", "looseemail":
		return "debe ser un correo válido"
	case "max":
		return "debe tener como máximo " + param + " caracteres"
	case "min":
		return "debe tener al menos " + param + " caracteres"
	default:
		if param != "" {
			return fmt.Sprintf("validación '%s' fallida con parámetro '%s'", tag, param)
		}
		return fmt.Sprintf("validación '%s' fallida", tag)
	}
}
