package dto

import "time"

// AdminUserRequest credenciales del administrador inicial de una organización.
type AdminUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CreateOrganizationRequest alta de organización con su administrador.
type CreateOrganizationRequest struct {
	Name      string           `json:"name" validate:"required,min=2,max=200"`
	Code      string           `json:"code" validate:"required,len=6"`
	Address   string           `json:"address" validate:"omitempty,max=500"`
	ContactNo string           `json:"contact_no" validate:"omitempty,max=50"`
	Admin     AdminUserRequest `json:"admin"`
}

// UpdateOrganizationRequest actualización parcial de una organización.
type UpdateOrganizationRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=200"`
	Code      *string `json:"code" validate:"omitempty,len=6"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	ContactNo *string `json:"contact_no" validate:"omitempty,max=50"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	ContactNo string    `json:"contact_no"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BootstrapResponse resultado del alta: organización, administrador y tipos por defecto.
type BootstrapResponse struct {
	Organization  OrganizationResponse   `json:"organization"`
	Admin         UserResponse           `json:"admin"`
	MaterialTypes []MaterialTypeResponse `json:"material_types"`
}
