package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, organization_id, project_name, client, construction_site, start_date, end_date, value, status, created_at, updated_at`

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func scanProject(row pgx.Row, extra ...any) (*entity.Project, error) {
	var p entity.Project
	dest := []any{
		&p.ID, &p.OrganizationID, &p.ProjectName, &p.Client, &p.ConstructionSite,
		&p.StartDate, &p.EndDate, &p.Value, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una obra en la organización del scope.
func (r *ProjectRepo) Create(ctx context.Context, scope tenant.Scope, p *entity.Project) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	p.OrganizationID = org
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		p.ID, org, p.ProjectName, p.Client, p.ConstructionSite,
		p.StartDate, p.EndDate, p.Value, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeError("insert project", err)
	}
	return nil
}

// GetByID obtiene una obra; la de otra organización se reporta como inexistente.
func (r *ProjectRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Project, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND organization_id = $2`
	p, err := scanProject(r.q.QueryRow(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("obra no encontrada")
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// List lista obras con filtros simples; devuelve además el total sin paginar.
func (r *ProjectRepo) List(ctx context.Context, scope tenant.Scope, f repository.ProjectFilter) ([]*entity.Project, int, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, 0, err
	}
	filtered := `
		FROM projects
		WHERE organization_id = $1
		  AND ($2 = '' OR project_name ILIKE $2 OR client ILIKE $2 OR construction_site ILIKE $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4::date IS NULL OR start_date >= $4::date)
		  AND ($5::date IS NULL OR start_date <= $5::date)`
	args := []any{org, likePattern(f.Search), string(f.Status), f.Start.From, f.Start.To}
	query := `SELECT ` + projectColumns + `, count(*) OVER()` + filtered + `
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Project
		total int
	)
	for rows.Next() {
		p, err := scanProject(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, args...); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	return list, total, nil
}

// ListThin id y nombre de las obras para selectores.
func (r *ProjectRepo) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]repository.Option, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, project_name FROM projects
		WHERE organization_id = $1 AND ($2 = '' OR project_name ILIKE $2)
		ORDER BY project_name LIMIT $3`
	return queryOptions(ctx, r.q, "list projects thin", query, org, likePattern(search), thinLimit)
}

// ExistsByName pre-chequeo de nombre duplicado dentro de la organización.
func (r *ProjectRepo) ExistsByName(ctx context.Context, scope tenant.Scope, name, excludeID string) (bool, error) {
	org, err := orgID(scope)
	if err != nil {
		return false, err
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM projects
			WHERE organization_id = $1 AND project_name = $2 AND ($3 = '' OR id::text <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, org, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists project: %w", err)
	}
	return exists, nil
}

// Update actualiza una obra de la organización.
func (r *ProjectRepo) Update(ctx context.Context, scope tenant.Scope, p *entity.Project) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	query := `
		UPDATE projects
		SET project_name = $3, client = $4, construction_site = $5, start_date = $6,
		    end_date = $7, value = $8, status = $9, updated_at = $10
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, org, p.ProjectName, p.Client, p.ConstructionSite, p.StartDate,
		p.EndDate, p.Value, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return writeError("update project", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("obra no encontrada")
	}
	return nil
}

// Delete elimina una obra sin materiales ni gastos asociados.
func (r *ProjectRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	if err := checkDependents(ctx, r.q, org, id, "la obra",
		dependent{table: "materials", column: "project_id", label: "materiales"},
		dependent{table: "expenses", column: "project_id", label: "gastos"},
	); err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND organization_id = $2`, id, org)
	if err != nil {
		return deleteError("delete project", "la obra", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("obra no encontrada")
	}
	return nil
}
