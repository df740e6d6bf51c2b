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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseSelect = `
	SELECT e.id, e.organization_id, e.date, e.scope, e.project_id, e.vendor_id, e.description,
	       e.amount, e.created_by, e.created_at, e.updated_at, v.vendor_name, p.project_name`

const expenseFrom = `
	FROM expenses e
	LEFT JOIN vendors v ON v.id = e.vendor_id AND v.organization_id = e.organization_id
	LEFT JOIN projects p ON p.id = e.project_id AND p.organization_id = e.organization_id`

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func scanExpense(row pgx.Row, extra ...any) (*entity.Expense, error) {
	var e entity.Expense
	dest := []any{
		&e.ID, &e.OrganizationID, &e.Date, &e.Scope, &e.ProjectID, &e.VendorID, &e.Description,
		&e.Amount, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &e.VendorName, &e.ProjectName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un gasto; created_by debe ser un usuario de la misma organización.
func (r *ExpenseRepo) Create(ctx context.Context, scope tenant.Scope, e *entity.Expense) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	e.OrganizationID = org
	query := `
		INSERT INTO expenses (id, organization_id, date, scope, project_id, vendor_id, description,
		                      amount, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		e.ID, org, e.Date, e.Scope, e.ProjectID, e.VendorID, e.Description,
		e.Amount, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return writeError("insert expense", err)
	}
	return nil
}

// GetByID obtiene un gasto de la organización.
func (r *ExpenseRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Expense, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := expenseSelect + expenseFrom + ` WHERE e.id = $1 AND e.organization_id = $2`
	e, err := scanExpense(r.q.QueryRow(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("gasto no encontrado")
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// List lista gastos; la búsqueda cubre descripción, proveedor y obra.
func (r *ExpenseRepo) List(ctx context.Context, scope tenant.Scope, f repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, 0, err
	}
	filtered := expenseFrom + `
		WHERE e.organization_id = $1
		  AND ($2 = '' OR e.description ILIKE $2 OR v.vendor_name ILIKE $2 OR p.project_name ILIKE $2)
		  AND ($3 = '' OR e.scope = $3)
		  AND ($4 = '' OR e.project_id::text = $4)
		  AND ($5::date IS NULL OR e.date >= $5::date)
		  AND ($6::date IS NULL OR e.date <= $6::date)`
	args := []any{org, likePattern(f.Search), string(f.Scope), f.ProjectID, f.Date.From, f.Date.To}
	query := expenseSelect + `, count(*) OVER()` + filtered + `
		ORDER BY e.date DESC, e.created_at DESC
		LIMIT $7 OFFSET $8`
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Expense
		total int
	)
	for rows.Next() {
		e, err := scanExpense(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, args...); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	return list, total, nil
}

// Update actualiza un gasto; created_by no cambia.
func (r *ExpenseRepo) Update(ctx context.Context, scope tenant.Scope, e *entity.Expense) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	query := `
		UPDATE expenses
		SET date = $3, scope = $4, project_id = $5, vendor_id = $6, description = $7,
		    amount = $8, updated_at = $9
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, org, e.Date, e.Scope, e.ProjectID, e.VendorID, e.Description, e.Amount, e.UpdatedAt,
	)
	if err != nil {
		return writeError("update expense", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("gasto no encontrado")
	}
	return nil
}

// Delete elimina un gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND organization_id = $2`, id, org)
	if err != nil {
		return deleteError("delete expense", "el gasto", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("gasto no encontrado")
	}
	return nil
}
