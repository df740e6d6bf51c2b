package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseScope indica si el gasto se imputa a una obra o a la empresa.
type ExpenseScope string

const (
	ExpenseScopeProject ExpenseScope = "project"
	ExpenseScopeCompany ExpenseScope = "company"
)

// Valid informa si el alcance es uno de los definidos.
func (s ExpenseScope) Valid() bool {
	return s == ExpenseScopeProject || s == ExpenseScopeCompany
}

// Expense gasto registrado por un usuario. ProjectID es obligatorio si Scope es project.
type Expense struct {
	ID             string
	OrganizationID string
	Date           time.Time
	Scope          ExpenseScope
	ProjectID      *string
	VendorID       *string
	Description    *string
	Amount         decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Solo lectura (LEFT JOIN).
	VendorName  *string
	ProjectName *string
}
