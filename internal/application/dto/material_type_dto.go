package dto

import "time"

// MaterialTypeRequest entrada para crear o renombrar un tipo de material.
type MaterialTypeRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// MaterialTypeResponse salida de un tipo de material.
type MaterialTypeResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
