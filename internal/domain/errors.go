package domain

import (
	"errors"
	"strings"
)

// Tipos de error de dominio (sin dependencias externas).
// La capa HTTP es la única que los traduce a códigos de estado.
var (
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrValidation      = errors.New("entrada inválida")
	ErrInternal        = errors.New("error interno")
)

// FieldError describe un error de validación sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error es un error tipado: Kind es uno de los sentinelas Err*.
// errors.Is(err, domain.ErrConflict) funciona a través de Unwrap.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap expone tanto el tipo como la causa para errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// NotFound construye un error NotFound con mensaje legible.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

// Conflict construye un error Conflict (clave natural duplicada o dependientes).
func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// Forbidden construye un error Forbidden.
func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Message: msg}
}

// Unauthenticated construye un error Unauthenticated envolviendo la causa.
func Unauthenticated(msg string, cause error) error {
	return &Error{Kind: ErrUnauthenticated, Message: msg, Cause: cause}
}

// Validation construye un error de validación con errores por campo.
func Validation(msg string, fields ...FieldError) error {
	return &Error{Kind: ErrValidation, Message: msg, Fields: fields}
}

// InvalidField atajo para un único campo inválido.
func InvalidField(field, msg string) error {
	return Validation(msg, FieldError{Field: field, Message: msg})
}

// KindOf devuelve el sentinela que clasifica err; ErrInternal si no es de dominio.
func KindOf(err error) error {
	for _, k := range []error{ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrConflict, ErrValidation, ErrInternal} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// Message devuelve el mensaje público del error (sin la causa interna).
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		if de.Message != "" {
			return de.Message
		}
		return de.Kind.Error()
	}
	return KindOf(err).Error()
}

// Fields devuelve los errores por campo, si los hay.
func Fields(err error) []FieldError {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

// ConflictWith Conflict que conserva la causa (violación de constraint).
func ConflictWith(msg string, cause error) error {
	return &Error{Kind: ErrConflict, Message: msg, Cause: cause}
}

// Internal envuelve una falla inesperada; el mensaje público es genérico.
func Internal(cause error) error {
	return &Error{Kind: ErrInternal, Cause: cause}
}
