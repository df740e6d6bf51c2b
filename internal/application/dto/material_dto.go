package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para registrar una compra de material.
// Receipt es opcional: data URL base64 de una imagen (data:image/png;base64,...).
type CreateMaterialRequest struct {
	VendorID       string          `json:"vendor_id" validate:"required,uuid"`
	MaterialTypeID string          `json:"material_type_id" validate:"required,uuid"`
	ProjectID      string          `json:"project_id" validate:"required,uuid"`
	Unit           string          `json:"unit" validate:"required,max=30"`
	Quantity       decimal.Decimal `json:"quantity"`
	Receipt        *string         `json:"receipt"`
	BillDate       *string         `json:"bill_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateMaterialRequest actualización parcial. Receipt "" elimina el comprobante actual.
type UpdateMaterialRequest struct {
	VendorID       *string          `json:"vendor_id" validate:"omitempty,uuid"`
	MaterialTypeID *string          `json:"material_type_id" validate:"omitempty,uuid"`
	ProjectID      *string          `json:"project_id" validate:"omitempty,uuid"`
	Unit           *string          `json:"unit" validate:"omitempty,max=30"`
	Quantity       *decimal.Decimal `json:"quantity"`
	Receipt        *string          `json:"receipt"`
	BillDate       *string          `json:"bill_date" validate:"omitempty,datetime=2006-01-02"`
}

// MaterialFilterRequest query string del listado de materiales.
type MaterialFilterRequest struct {
	Search    string `query:"search"`
	ProjectID string `query:"project_id" validate:"omitempty,uuid"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// MaterialResponse salida de un material; ReceiptURL es una URL firmada temporal.
type MaterialResponse struct {
	ID               string          `json:"id"`
	OrganizationID   string          `json:"organization_id"`
	VendorID         string          `json:"vendor_id"`
	VendorName       string          `json:"vendor_name,omitempty"`
	MaterialTypeID   string          `json:"material_type_id"`
	MaterialTypeName string          `json:"material_type_name,omitempty"`
	ProjectID        string          `json:"project_id"`
	ProjectName      string          `json:"project_name,omitempty"`
	Unit             string          `json:"unit"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceiptURL       *string         `json:"receipt_url,omitempty"`
	BillDate         *string         `json:"bill_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
