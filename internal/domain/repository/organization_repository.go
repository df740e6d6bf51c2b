package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
)

// OrganizationRepository puerto de persistencia de organizaciones (tenants).
// Las organizaciones no pertenecen a ningún tenant: solo el super-rol las gestiona.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Organization, int, error)
	ListThin(ctx context.Context, search string) ([]Option, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Update(ctx context.Context, org *entity.Organization) error
	// Delete borra en cascada todas las filas de la organización.
	Delete(ctx context.Context, id string) error
}
