package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describe una validación fallida de un campo del request.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Tag)
}

// ValidateStruct valida los tags `validate` de un DTO y devuelve los errores de campo.
func ValidateStruct(data interface{}) []FieldError {
	var out []FieldError
	if err := validate.Struct(data); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			out = append(out, FieldError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return out
}

// Messages aplana los errores de campo en strings legibles.
func Messages(errs []FieldError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, strings.ToLower(e.String()))
	}
	return msgs
}
