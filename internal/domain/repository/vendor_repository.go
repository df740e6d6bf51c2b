package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// VendorRepository puerto de persistencia de proveedores, restringido al Scope.
type VendorRepository interface {
	Create(ctx context.Context, scope tenant.Scope, v *entity.Vendor) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Vendor, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.Vendor, int, error)
	ListThin(ctx context.Context, scope tenant.Scope, search string) ([]Option, error)
	ExistsByName(ctx context.Context, scope tenant.Scope, name, excludeID string) (bool, error)
	Update(ctx context.Context, scope tenant.Scope, v *entity.Vendor) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
