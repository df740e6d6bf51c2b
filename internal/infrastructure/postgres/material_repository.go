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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// Los JOIN repiten organization_id: las FK compuestas ya lo garantizan, pero la consulta no depende de ello.
const materialSelect = `
	SELECT m.id, m.organization_id, m.vendor_id, m.material_type_id, m.project_id, m.unit,
	       m.quantity, m.receipt, m.bill_date, m.created_at, m.updated_at,
	       v.vendor_name, t.name, p.project_name`

const materialFrom = `
	FROM materials m
	JOIN vendors v ON v.id = m.vendor_id AND v.organization_id = m.organization_id
	JOIN material_types t ON t.id = m.material_type_id AND t.organization_id = m.organization_id
	JOIN projects p ON p.id = m.project_id AND p.organization_id = m.organization_id`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row, extra ...any) (*entity.Material, error) {
	var m entity.Material
	dest := []any{
		&m.ID, &m.OrganizationID, &m.VendorID, &m.MaterialTypeID, &m.ProjectID, &m.Unit,
		&m.Quantity, &m.Receipt, &m.BillDate, &m.CreatedAt, &m.UpdatedAt,
		&m.VendorName, &m.MaterialTypeName, &m.ProjectName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una compra de material. Una referencia de otra organización viola la FK compuesta.
func (r *MaterialRepo) Create(ctx context.Context, scope tenant.Scope, m *entity.Material) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	m.OrganizationID = org
	query := `
		INSERT INTO materials (id, organization_id, vendor_id, material_type_id, project_id, unit,
		                       quantity, receipt, bill_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		m.ID, org, m.VendorID, m.MaterialTypeID, m.ProjectID, m.Unit,
		m.Quantity, m.Receipt, m.BillDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return writeError("insert material", err)
	}
	return nil
}

// GetByID obtiene un material con los nombres de sus referencias.
func (r *MaterialRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Material, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := materialSelect + materialFrom + ` WHERE m.id = $1 AND m.organization_id = $2`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("material no encontrado")
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista materiales; la búsqueda cubre proveedor, tipo, obra y unidad.
func (r *MaterialRepo) List(ctx context.Context, scope tenant.Scope, f repository.MaterialFilter) ([]*entity.Material, int, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, 0, err
	}
	filtered := materialFrom + `
		WHERE m.organization_id = $1
		  AND ($2 = '' OR v.vendor_name ILIKE $2 OR t.name ILIKE $2 OR p.project_name ILIKE $2 OR m.unit ILIKE $2)
		  AND ($3 = '' OR m.project_id::text = $3)
		  AND ($4::date IS NULL OR m.bill_date >= $4::date)
		  AND ($5::date IS NULL OR m.bill_date <= $5::date)`
	args := []any{org, likePattern(f.Search), f.ProjectID, f.BillDate.From, f.BillDate.To}
	query := materialSelect + `, count(*) OVER()` + filtered + `
		ORDER BY m.created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Material
		total int
	)
	for rows.Next() {
		m, err := scanMaterial(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, args...); err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}
	return list, total, nil
}

// ListThin id y "tipo - obra" de cada material.
func (r *MaterialRepo) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]repository.Option, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT m.id, t.name || ' - ' || p.project_name` + materialFrom + `
		WHERE m.organization_id = $1 AND ($2 = '' OR t.name ILIKE $2 OR p.project_name ILIKE $2)
		ORDER BY m.created_at DESC LIMIT $3`
	return queryOptions(ctx, r.q, "list materials thin", query, org, likePattern(search), thinLimit)
}

// Update actualiza un material de la organización.
func (r *MaterialRepo) Update(ctx context.Context, scope tenant.Scope, m *entity.Material) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	query := `
		UPDATE materials
		SET vendor_id = $3, material_type_id = $4, project_id = $5, unit = $6,
		    quantity = $7, receipt = $8, bill_date = $9, updated_at = $10
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, org, m.VendorID, m.MaterialTypeID, m.ProjectID, m.Unit,
		m.Quantity, m.Receipt, m.BillDate, m.UpdatedAt,
	)
	if err != nil {
		return writeError("update material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("material no encontrado")
	}
	return nil
}

// Delete elimina un material. Nada depende de él.
func (r *MaterialRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1 AND organization_id = $2`, id, org)
	if err != nil {
		return deleteError("delete material", "el material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("material no encontrado")
	}
	return nil
}
