package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto. ProjectID es obligatorio si scope=project.
type CreateExpenseRequest struct {
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Scope       string          `json:"scope" validate:"required,oneof=project company"`
	ProjectID   *string         `json:"project_id" validate:"omitempty,uuid"`
	VendorID    *string         `json:"vendor_id" validate:"omitempty,uuid"`
	Description *string         `json:"description" validate:"omitempty,max=1000"`
	Amount      decimal.Decimal `json:"amount"`
}

// UpdateExpenseRequest actualización parcial de un gasto.
type UpdateExpenseRequest struct {
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Scope       *string          `json:"scope" validate:"omitempty,oneof=project company"`
	ProjectID   *string          `json:"project_id" validate:"omitempty,uuid"`
	VendorID    *string          `json:"vendor_id" validate:"omitempty,uuid"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Amount      *decimal.Decimal `json:"amount"`
}

// ExpenseFilterRequest query string del listado de gastos.
type ExpenseFilterRequest struct {
	Search    string `query:"search"`
	Scope     string `query:"scope" validate:"omitempty,oneof=project company"`
	ProjectID string `query:"project_id" validate:"omitempty,uuid"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Date           string          `json:"date"`
	Scope          string          `json:"scope"`
	ProjectID      *string         `json:"project_id,omitempty"`
	ProjectName    *string         `json:"project_name,omitempty"`
	VendorID       *string         `json:"vendor_id,omitempty"`
	VendorName     *string         `json:"vendor_name,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
