package entity

import (
	"time"

	"github.com/jhoicas/Obra-api/internal/domain/rbac"
)

// User representa un usuario del sistema (pertenece a una Organization).
// El par (email, organization_id) es único: el mismo email puede existir en otra organización.
type User struct {
	ID             string
	OrganizationID string
	Name           string
	Email          string
	PasswordHash   string // bcrypt hash, nunca se expone
	Role           rbac.Role
	Avatar         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
