package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// MaterialTypeRepository puerto de persistencia de tipos de material.
type MaterialTypeRepository interface {
	Create(ctx context.Context, scope tenant.Scope, mt *entity.MaterialType) error
	// CreateMany inserta en bloque (alta de organización).
	CreateMany(ctx context.Context, scope tenant.Scope, list []*entity.MaterialType) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.MaterialType, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.MaterialType, int, error)
	ListThin(ctx context.Context, scope tenant.Scope, search string) ([]Option, error)
	ExistsBySlug(ctx context.Context, scope tenant.Scope, slug, excludeID string) (bool, error)
	Update(ctx context.Context, scope tenant.Scope, mt *entity.MaterialType) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
