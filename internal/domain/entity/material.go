package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material compra de material para una obra. Las tres referencias pertenecen
// a la misma organización que el material.
type Material struct {
	ID             string
	OrganizationID string
	VendorID       string
	MaterialTypeID string
	ProjectID      string
	Unit           string
	Quantity       decimal.Decimal
	Receipt        *string // clave del objeto en el almacenamiento de comprobantes
	BillDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Solo lectura: nombres de las referencias, resueltos por JOIN.
	VendorName       string
	MaterialTypeName string
	ProjectName      string
}
