package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/shopspring/decimal"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados del tablero sobre PostgreSQL. Requiere el pool: el caso
// de uso lanza las consultas en paralelo y una tx no admite uso concurrente.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

func (r *DashboardRepo) count(ctx context.Context, scope tenant.Scope, table string) (int, error) {
	org, err := orgID(scope)
	if err != nil {
		return 0, err
	}
	var n int
	query := `SELECT count(*) FROM ` + table + ` WHERE organization_id = $1`
	if err := r.q.QueryRow(ctx, query, org).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// CountProjects obras de la organización.
func (r *DashboardRepo) CountProjects(ctx context.Context, scope tenant.Scope) (int, error) {
	return r.count(ctx, scope, "projects")
}

// CountVendors proveedores de la organización.
func (r *DashboardRepo) CountVendors(ctx context.Context, scope tenant.Scope) (int, error) {
	return r.count(ctx, scope, "vendors")
}

// CountMaterials compras de material de la organización.
func (r *DashboardRepo) CountMaterials(ctx context.Context, scope tenant.Scope) (int, error) {
	return r.count(ctx, scope, "materials")
}

// SumExpenses total de gastos de la organización.
func (r *DashboardRepo) SumExpenses(ctx context.Context, scope tenant.Scope) (decimal.Decimal, error) {
	org, err := orgID(scope)
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE organization_id = $1`
	if err := r.q.QueryRow(ctx, query, org).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}
