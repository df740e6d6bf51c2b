package dto

import "time"

// CreateVendorRequest entrada para crear un proveedor.
type CreateVendorRequest struct {
	VendorName    string `json:"vendor_name" validate:"required,min=2,max=200"`
	VendorAddress string `json:"vendor_address" validate:"omitempty,max=500"`
}

// UpdateVendorRequest actualización parcial de un proveedor.
type UpdateVendorRequest struct {
	VendorName    *string `json:"vendor_name" validate:"omitempty,min=2,max=200"`
	VendorAddress *string `json:"vendor_address" validate:"omitempty,max=500"`
}

// VendorResponse salida de un proveedor.
type VendorResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	VendorName     string    `json:"vendor_name"`
	VendorAddress  string    `json:"vendor_address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
