package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProjectRequest entrada para crear una obra.
type CreateProjectRequest struct {
	ProjectName      string          `json:"project_name" validate:"required,min=2,max=200"`
	Client           string          `json:"client" validate:"required,max=200"`
	ConstructionSite string          `json:"construction_site" validate:"required,max=500"`
	StartDate        string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate          *string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Value            decimal.Decimal `json:"value"`
	Status           string          `json:"status" validate:"omitempty,oneof=pending confirm ongoing completed stop leave"`
}

// UpdateProjectRequest actualización parcial de una obra.
type UpdateProjectRequest struct {
	ProjectName      *string          `json:"project_name" validate:"omitempty,min=2,max=200"`
	Client           *string          `json:"client" validate:"omitempty,max=200"`
	ConstructionSite *string          `json:"construction_site" validate:"omitempty,max=500"`
	StartDate        *string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate          *string          `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Value            *decimal.Decimal `json:"value"`
	Status           *string          `json:"status" validate:"omitempty,oneof=pending confirm ongoing completed stop leave"`
}

// ProjectFilterRequest query string del listado de obras.
type ProjectFilterRequest struct {
	Search    string `query:"search"`
	Status    string `query:"status" validate:"omitempty,oneof=pending confirm ongoing completed stop leave"`
	StartFrom string `query:"start_from" validate:"omitempty,datetime=2006-01-02"`
	StartTo   string `query:"start_to" validate:"omitempty,datetime=2006-01-02"`
}

// ProjectResponse salida de una obra.
type ProjectResponse struct {
	ID               string          `json:"id"`
	OrganizationID   string          `json:"organization_id"`
	ProjectName      string          `json:"project_name"`
	Client           string          `json:"client"`
	ConstructionSite string          `json:"construction_site"`
	StartDate        string          `json:"start_date"`
	EndDate          *string         `json:"end_date,omitempty"`
	Value            decimal.Decimal `json:"value"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
