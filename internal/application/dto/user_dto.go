package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// La organización sale del token, nunca del cuerpo.
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Role     string  `json:"role" validate:"required,oneof=super_admin admin accountant project_manager supervisor site_engineer"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// UpdateUserRequest actualización parcial de un usuario.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role" validate:"omitempty,oneof=super_admin admin accountant project_manager supervisor site_engineer"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Avatar         *string   `json:"avatar,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoginRequest entrada para login: el email es único solo dentro de la organización.
type LoginRequest struct {
	OrganizationCode string `json:"organization_code" validate:"required,len=6"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token       string       `json:"token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
	Permissions []string     `json:"permissions"`
}

// PermissionsResponse permisos efectivos del usuario autenticado.
type PermissionsResponse struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}
