// Package validation envuelve go-playground/validator para validar structs de
// entrada de los casos de uso.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Error lista de campos inválidos.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, describe(f))
	}
	return strings.Join(parts, "; ")
}

func describe(f FieldError) string {
	switch f.Tag {
	case "required":
		return fmt.Sprintf("el campo '%s' es obligatorio", f.Field)
	case "min":
		return fmt.Sprintf("el campo '%s' debe tener como mínimo %s", f.Field, f.Param)
	case "max":
		return fmt.Sprintf("el campo '%s' debe tener como máximo %s", f.Field, f.Param)
	case "oneof":
		return fmt.Sprintf("el campo '%s' debe ser uno de: %s", f.Field, f.Param)
	default:
		return fmt.Sprintf("el campo '%s' no cumple la regla '%s'", f.Field, f.Tag)
	}
}

// Struct valida s según sus etiquetas `validate`. Devuelve *Error si algún
// campo es inválido.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
