package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// MaterialFilter criterios del listado de compras de material.
type MaterialFilter struct {
	Search    string // proveedor, tipo u obra
	ProjectID string
	BillDate  DateRange
	Page
}

// MaterialRepository puerto de persistencia de materiales.
type MaterialRepository interface {
	Create(ctx context.Context, scope tenant.Scope, m *entity.Material) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Material, error)
	List(ctx context.Context, scope tenant.Scope, f MaterialFilter) ([]*entity.Material, int, error)
	ListThin(ctx context.Context, scope tenant.Scope, search string) ([]Option, error)
	Update(ctx context.Context, scope tenant.Scope, m *entity.Material) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
