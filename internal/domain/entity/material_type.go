package entity

import "time"

// MaterialType tipo de material (Cemento, Arena...). Slug es único por organización.
type MaterialType struct {
	ID             string
	OrganizationID string
	Name           string
	Slug           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
