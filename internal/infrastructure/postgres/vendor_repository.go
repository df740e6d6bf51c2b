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

var _ repository.VendorRepository = (*VendorRepo)(nil)

const vendorColumns = `id, organization_id, vendor_name, vendor_address, created_at, updated_at`

// VendorRepo implementación de VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

func scanVendor(row pgx.Row, extra ...any) (*entity.Vendor, error) {
	var v entity.Vendor
	dest := []any{&v.ID, &v.OrganizationID, &v.VendorName, &v.VendorAddress, &v.CreatedAt, &v.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste un proveedor.
func (r *VendorRepo) Create(ctx context.Context, scope tenant.Scope, v *entity.Vendor) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	v.OrganizationID = org
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, v.ID, org, v.VendorName, v.VendorAddress, v.CreatedAt, v.UpdatedAt); err != nil {
		return writeError("insert vendor", err)
	}
	return nil
}

// GetByID obtiene un proveedor de la organización.
func (r *VendorRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Vendor, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1 AND organization_id = $2`
	v, err := scanVendor(r.q.QueryRow(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("proveedor no encontrado")
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// List lista proveedores buscando por nombre o dirección.
func (r *VendorRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Vendor, int, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, 0, err
	}
	filtered := `
		FROM vendors
		WHERE organization_id = $1
		  AND ($2 = '' OR vendor_name ILIKE $2 OR vendor_address ILIKE $2)`
	query := `SELECT ` + vendorColumns + `, count(*) OVER()` + filtered + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, org, likePattern(f.Search), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Vendor
		total int
	)
	for rows.Next() {
		v, err := scanVendor(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, org, likePattern(f.Search)); err != nil {
		return nil, 0, fmt.Errorf("count vendors: %w", err)
	}
	return list, total, nil
}

// ListThin id y nombre de los proveedores.
func (r *VendorRepo) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]repository.Option, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, vendor_name FROM vendors
		WHERE organization_id = $1 AND ($2 = '' OR vendor_name ILIKE $2)
		ORDER BY vendor_name LIMIT $3`
	return queryOptions(ctx, r.q, "list vendors thin", query, org, likePattern(search), thinLimit)
}

// ExistsByName pre-chequeo de nombre duplicado dentro de la organización.
func (r *VendorRepo) ExistsByName(ctx context.Context, scope tenant.Scope, name, excludeID string) (bool, error) {
	org, err := orgID(scope)
	if err != nil {
		return false, err
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM vendors
			WHERE organization_id = $1 AND vendor_name = $2 AND ($3 = '' OR id::text <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, org, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists vendor: %w", err)
	}
	return exists, nil
}

// Update actualiza un proveedor.
func (r *VendorRepo) Update(ctx context.Context, scope tenant.Scope, v *entity.Vendor) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	query := `
		UPDATE vendors SET vendor_name = $3, vendor_address = $4, updated_at = $5
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.q.Exec(ctx, query, v.ID, org, v.VendorName, v.VendorAddress, v.UpdatedAt)
	if err != nil {
		return writeError("update vendor", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("proveedor no encontrado")
	}
	return nil
}

// Delete elimina un proveedor sin materiales ni gastos asociados.
func (r *VendorRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	if err := checkDependents(ctx, r.q, org, id, "el proveedor",
		dependent{table: "materials", column: "vendor_id", label: "materiales"},
		dependent{table: "expenses", column: "vendor_id", label: "gastos"},
	); err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM vendors WHERE id = $1 AND organization_id = $2`, id, org)
	if err != nil {
		return deleteError("delete vendor", "el proveedor", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("proveedor no encontrado")
	}
	return nil
}
