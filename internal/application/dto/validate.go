package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Obra-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores por campo usan el nombre JSON (o de query) que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validate aplica los tags `validate` de un DTO; los fallos salen como
// ValidationFailed con un FieldError por campo.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make([]domain.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, domain.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return domain.Validation("datos inválidos", fields...)
}

// fieldPath quita el nombre del struct raíz: "CreateOrganizationRequest.admin.email" → "admin.email".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "requerido"
	case "email":
		return "email inválido"
	case "uuid":
		return "id inválido"
	case "url":
		return "URL inválida"
	case "datetime":
		return "fecha inválida, formato AAAA-MM-DD"
	case "min":
		return "mínimo " + fe.Param() + " caracteres"
	case "max":
		return "máximo " + fe.Param() + " caracteres"
	case "len":
		return "debe tener " + fe.Param() + " caracteres"
	case "oneof":
		return "valores permitidos: " + fe.Param()
	}
	return fmt.Sprintf("no cumple la regla %s", fe.Tag())
}
