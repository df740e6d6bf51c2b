package entity

import "time"

// Vendor proveedor de materiales o servicios. VendorName es único por organización.
type Vendor struct {
	ID             string
	OrganizationID string
	VendorName     string
	VendorAddress  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
