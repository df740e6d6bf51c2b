package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

const organizationColumns = `id, name, code, address, contact_no, created_at, updated_at`

// OrganizationRepo implementación de OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

func scanOrganization(row pgx.Row, extra ...any) (*entity.Organization, error) {
	var o entity.Organization
	dest := []any{&o.ID, &o.Name, &o.Code, &o.Address, &o.ContactNo, &o.CreatedAt, &o.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una organización. El código duplicado lo resuelve el constraint único.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, org.ID, org.Name, org.Code, org.Address, org.ContactNo, org.CreatedAt, org.UpdatedAt)
	if err != nil {
		return writeError("insert organization", err)
	}
	return nil
}

// GetByID obtiene una organización.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	o, err := scanOrganization(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("organización no encontrada")
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return o, nil
}

// List lista organizaciones buscando por nombre o código.
func (r *OrganizationRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Organization, int, error) {
	filtered := `
		FROM organizations
		WHERE ($1 = '' OR name ILIKE $1 OR code ILIKE $1)`
	query := `SELECT ` + organizationColumns + `, count(*) OVER()` + filtered + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, likePattern(f.Search), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Organization
		total int
	)
	for rows.Next() {
		o, err := scanOrganization(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, likePattern(f.Search)); err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}
	return list, total, nil
}

// ListThin id y nombre de las organizaciones.
func (r *OrganizationRepo) ListThin(ctx context.Context, search string) ([]repository.Option, error) {
	query := `
		SELECT id, name FROM organizations
		WHERE ($1 = '' OR name ILIKE $1 OR code ILIKE $1)
		ORDER BY name LIMIT $2`
	return queryOptions(ctx, r.q, "list organizations thin", query, likePattern(search), thinLimit)
}

// ExistsByCode pre-chequeo del código global.
func (r *OrganizationRepo) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM organizations WHERE code = $1 AND ($2 = '' OR id::text <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists organization: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos de una organización.
func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations SET name = $2, code = $3, address = $4, contact_no = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, org.ID, org.Name, org.Code, org.Address, org.ContactNo, org.UpdatedAt)
	if err != nil {
		return writeError("update organization", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("organización no encontrada")
	}
	return nil
}

// Delete elimina la organización; ON DELETE CASCADE borra todas sus filas.
func (r *OrganizationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return deleteError("delete organization", "la organización", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("organización no encontrada")
	}
	return nil
}
