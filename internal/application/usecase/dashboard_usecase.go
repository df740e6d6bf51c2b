package usecase

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"golang.org/x/sync/errgroup"
)

// DashboardUseCase indicadores del tablero de la organización.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats ejecuta los cuatro agregados en paralelo; el primer error cancela el resto.
func (uc *DashboardUseCase) Stats(ctx context.Context, scope tenant.Scope) (*dto.DashboardStatsResponse, error) {
	var out dto.DashboardStatsResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Projects, err = uc.repo.CountProjects(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		out.Vendors, err = uc.repo.CountVendors(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		out.Materials, err = uc.repo.CountMaterials(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		out.ExpenseTotal, err = uc.repo.SumExpenses(gctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
