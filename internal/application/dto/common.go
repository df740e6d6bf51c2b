package dto

import "github.com/jhoicas/Obra-api/internal/domain"

// Envelope forma estándar de toda respuesta HTTP.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// OK envuelve una respuesta exitosa.
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage respuesta exitosa sin datos.
func OKMessage(msg string) Envelope {
	return Envelope{Success: true, Message: msg}
}

// Fail respuesta de error.
func Fail(msg string, fields ...domain.FieldError) Envelope {
	return Envelope{Success: false, Message: msg, Errors: fields}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y el tope de 100 filas.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse lista paginada.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// OptionResponse elemento de un listado /thin.
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DateLayout formato de fecha en cuerpos y query strings.
const DateLayout = "2006-01-02"
