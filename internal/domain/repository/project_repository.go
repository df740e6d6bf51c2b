package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// ProjectFilter criterios del listado de obras.
type ProjectFilter struct {
	Search string // nombre, cliente u obra
	Status entity.ProjectStatus
	Start  DateRange
	Page
}

// ProjectRepository puerto de persistencia de obras, restringido al Scope.
type ProjectRepository interface {
	Create(ctx context.Context, scope tenant.Scope, p *entity.Project) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Project, error)
	List(ctx context.Context, scope tenant.Scope, f ProjectFilter) ([]*entity.Project, int, error)
	ListThin(ctx context.Context, scope tenant.Scope, search string) ([]Option, error)
	ExistsByName(ctx context.Context, scope tenant.Scope, name, excludeID string) (bool, error)
	Update(ctx context.Context, scope tenant.Scope, p *entity.Project) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
