package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

// DashboardRepository agregados del tablero; cada consulta es independiente.
type DashboardRepository interface {
	CountProjects(ctx context.Context, scope tenant.Scope) (int, error)
	CountVendors(ctx context.Context, scope tenant.Scope) (int, error)
	CountMaterials(ctx context.Context, scope tenant.Scope) (int, error)
	SumExpenses(ctx context.Context, scope tenant.Scope) (decimal.Decimal, error)
}
