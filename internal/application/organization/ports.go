package organization

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn devuelve error, nada de lo escrito queda visible.
type TxRunner interface {
	RunBootstrap(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		materialTypeRepo repository.MaterialTypeRepository,
		userRepo repository.UserRepository,
	) error) error
}
