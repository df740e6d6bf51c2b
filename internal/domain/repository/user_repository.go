package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// UserRepository puerto de persistencia de usuarios (pertenecen a una organización).
type UserRepository interface {
	Create(ctx context.Context, scope tenant.Scope, u *entity.User) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.User, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.User, int, error)
	ExistsByEmail(ctx context.Context, scope tenant.Scope, email, excludeID string) (bool, error)
	Update(ctx context.Context, scope tenant.Scope, u *entity.User) error
	// FindForLogin es la única lectura sin Scope: aún no hay token. Resuelve la
	// organización por su código; devuelve NotFound si no hay coincidencia.
	FindForLogin(ctx context.Context, organizationCode, email string) (*entity.User, error)
}
