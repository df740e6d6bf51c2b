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

var _ repository.MaterialTypeRepository = (*MaterialTypeRepo)(nil)

const materialTypeColumns = `id, organization_id, name, slug, created_at, updated_at`

// MaterialTypeRepo implementación de MaterialTypeRepository sobre PostgreSQL.
type MaterialTypeRepo struct {
	q Querier
}

// NewMaterialTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialTypeRepository(q Querier) *MaterialTypeRepo {
	return &MaterialTypeRepo{q: q}
}

func scanMaterialType(row pgx.Row, extra ...any) (*entity.MaterialType, error) {
	var mt entity.MaterialType
	dest := []any{&mt.ID, &mt.OrganizationID, &mt.Name, &mt.Slug, &mt.CreatedAt, &mt.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &mt, nil
}

const insertMaterialType = `
	INSERT INTO material_types (` + materialTypeColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6)`

// Create persiste un tipo de material.
func (r *MaterialTypeRepo) Create(ctx context.Context, scope tenant.Scope, mt *entity.MaterialType) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	mt.OrganizationID = org
	if _, err := r.q.Exec(ctx, insertMaterialType, mt.ID, org, mt.Name, mt.Slug, mt.CreatedAt, mt.UpdatedAt); err != nil {
		return writeError("insert material type", err)
	}
	return nil
}

// CreateMany inserta varios tipos con un batch; pensado para correr dentro de una tx.
func (r *MaterialTypeRepo) CreateMany(ctx context.Context, scope tenant.Scope, list []*entity.MaterialType) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	br, ok := r.q.(batchSender)
	if !ok {
		for _, mt := range list {
			if err := r.Create(ctx, scope, mt); err != nil {
				return err
			}
		}
		return nil
	}
	batch := &pgx.Batch{}
	for _, mt := range list {
		mt.OrganizationID = org
		batch.Queue(insertMaterialType, mt.ID, org, mt.Name, mt.Slug, mt.CreatedAt, mt.UpdatedAt)
	}
	results := br.SendBatch(ctx, batch)
	defer results.Close()
	for range list {
		if _, err := results.Exec(); err != nil {
			return writeError("insert material type", err)
		}
	}
	return nil
}

// GetByID obtiene un tipo de material de la organización.
func (r *MaterialTypeRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.MaterialType, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + materialTypeColumns + ` FROM material_types WHERE id = $1 AND organization_id = $2`
	mt, err := scanMaterialType(r.q.QueryRow(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("tipo de material no encontrado")
		}
		return nil, fmt.Errorf("get material type: %w", err)
	}
	return mt, nil
}

// List lista tipos de material buscando por nombre.
func (r *MaterialTypeRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.MaterialType, int, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, 0, err
	}
	filtered := `
		FROM material_types
		WHERE organization_id = $1 AND ($2 = '' OR name ILIKE $2)`
	query := `SELECT ` + materialTypeColumns + `, count(*) OVER()` + filtered + `
		ORDER BY name
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, org, likePattern(f.Search), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list material types: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.MaterialType
		total int
	)
	for rows.Next() {
		mt, err := scanMaterialType(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan material type: %w", err)
		}
		list = append(list, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list material types: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, org, likePattern(f.Search)); err != nil {
		return nil, 0, fmt.Errorf("count material types: %w", err)
	}
	return list, total, nil
}

// ListThin id y nombre de los tipos de material.
func (r *MaterialTypeRepo) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]repository.Option, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, name FROM material_types
		WHERE organization_id = $1 AND ($2 = '' OR name ILIKE $2)
		ORDER BY name LIMIT $3`
	return queryOptions(ctx, r.q, "list material types thin", query, org, likePattern(search), thinLimit)
}

// ExistsBySlug pre-chequeo del slug dentro de la organización.
func (r *MaterialTypeRepo) ExistsBySlug(ctx context.Context, scope tenant.Scope, slug, excludeID string) (bool, error) {
	org, err := orgID(scope)
	if err != nil {
		return false, err
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM material_types
			WHERE organization_id = $1 AND slug = $2 AND ($3 = '' OR id::text <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, org, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists material type: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre y slug.
func (r *MaterialTypeRepo) Update(ctx context.Context, scope tenant.Scope, mt *entity.MaterialType) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	query := `
		UPDATE material_types SET name = $3, slug = $4, updated_at = $5
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.q.Exec(ctx, query, mt.ID, org, mt.Name, mt.Slug, mt.UpdatedAt)
	if err != nil {
		return writeError("update material type", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tipo de material no encontrado")
	}
	return nil
}

// Delete elimina un tipo de material que ningún material referencia.
func (r *MaterialTypeRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	if err := checkDependents(ctx, r.q, org, id, "el tipo de material",
		dependent{table: "materials", column: "material_type_id", label: "materiales"},
	); err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM material_types WHERE id = $1 AND organization_id = $2`, id, org)
	if err != nil {
		return deleteError("delete material type", "el tipo de material", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tipo de material no encontrado")
	}
	return nil
}
