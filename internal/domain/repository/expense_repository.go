package repository

import (
	"context"

	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// ExpenseFilter criterios del listado de gastos.
type ExpenseFilter struct {
	Search    string // descripción, proveedor u obra
	Scope     entity.ExpenseScope
	ProjectID string
	Date      DateRange
	Page
}

// ExpenseRepository puerto de persistencia de gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, scope tenant.Scope, e *entity.Expense) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Expense, error)
	List(ctx context.Context, scope tenant.Scope, f ExpenseFilter) ([]*entity.Expense, int, error)
	Update(ctx context.Context, scope tenant.Scope, e *entity.Expense) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
