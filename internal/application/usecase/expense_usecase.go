package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

const expenseNotFound = "gasto no encontrado"

// ExpenseUseCase casos de uso para gastos.
type ExpenseUseCase struct {
	repo     repository.ExpenseRepository
	projects repository.ProjectRepository
	vendors  repository.VendorRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, projects repository.ProjectRepository, vendors repository.VendorRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, projects: projects, vendors: vendors}
}

// Create registra un gasto a nombre del usuario del scope.
func (uc *ExpenseUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	date, err := parseDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Date:        date,
		Scope:       entity.ExpenseScope(in.Scope),
		ProjectID:   optionalString(in.ProjectID),
		VendorID:    optionalString(in.VendorID),
		Description: optionalString(in.Description),
		Amount:      in.Amount,
		CreatedBy:   scope.UserID(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.validate(ctx, scope, e); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, scope, e); err != nil {
		return nil, err
	}
	created, err := uc.repo.GetByID(ctx, scope, e.ID)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(created), nil
}

// GetByID obtiene un gasto.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.ExpenseResponse, error) {
	if err := checkID(id, expenseNotFound); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List lista gastos.
func (uc *ExpenseUseCase) List(ctx context.Context, scope tenant.Scope, in dto.ExpenseFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.ExpenseResponse], error) {
	dates, err := dateRange("from", in.From, "to", in.To)
	if err != nil {
		return nil, err
	}
	f := repository.ExpenseFilter{
		Search:    in.Search,
		Scope:     entity.ExpenseScope(in.Scope),
		ProjectID: in.ProjectID,
		Date:      dates,
		Page:      toPage(page),
	}
	list, total, err := uc.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return &dto.ListResponse[dto.ExpenseResponse]{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// Update actualización parcial. Pasar a scope company descarta la obra.
func (uc *ExpenseUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := checkID(id, expenseNotFound); err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		if e.Date, err = parseDate("date", *in.Date); err != nil {
			return nil, err
		}
	}
	if in.Scope != nil {
		e.Scope = entity.ExpenseScope(*in.Scope)
	}
	if in.ProjectID != nil {
		e.ProjectID = optionalString(in.ProjectID)
	}
	if in.VendorID != nil {
		e.VendorID = optionalString(in.VendorID)
	}
	if in.Description != nil {
		e.Description = optionalString(in.Description)
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if e.Scope == entity.ExpenseScopeCompany && in.ProjectID == nil {
		e.ProjectID = nil
	}
	if err := uc.validate(ctx, scope, e); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, scope, e); err != nil {
		return nil, err
	}
	updated, err := uc.repo.GetByID(ctx, scope, e.ID)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(updated), nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := checkID(id, expenseNotFound); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, scope, id)
}

// validate reglas del gasto: monto positivo, obra obligatoria si scope=project y
// referencias dentro de la organización.
func (uc *ExpenseUseCase) validate(ctx context.Context, scope tenant.Scope, e *entity.Expense) error {
	var fields []domain.FieldError
	if !e.Scope.Valid() {
		fields = append(fields, domain.FieldError{Field: "scope", Message: "debe ser project o company"})
	}
	if e.Scope == entity.ExpenseScopeProject && e.ProjectID == nil {
		fields = append(fields, domain.FieldError{Field: "project_id", Message: "requerido cuando scope es project"})
	}
	if !e.Amount.IsPositive() {
		fields = append(fields, domain.FieldError{Field: "amount", Message: "debe ser mayor que cero"})
	} else if !fitsNumeric(e.Amount, 18, 2) {
		fields = append(fields, domain.FieldError{Field: "amount", Message: "excede el máximo permitido"})
	}
	if len(fields) > 0 {
		return domain.Validation("datos de gasto inválidos", fields...)
	}
	if e.ProjectID != nil {
		if err := checkRefID("project_id", *e.ProjectID); err != nil {
			return err
		}
		if _, err := uc.projects.GetByID(ctx, scope, *e.ProjectID); err != nil {
			return referenceError("project_id", err)
		}
	}
	if e.VendorID != nil {
		if err := checkRefID("vendor_id", *e.VendorID); err != nil {
			return err
		}
		if _, err := uc.vendors.GetByID(ctx, scope, *e.VendorID); err != nil {
			return referenceError("vendor_id", err)
		}
	}
	return nil
}

func referenceError(field string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.InvalidField(field, "no existe en la organización")
	}
	return err
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Date:           formatDate(e.Date),
		Scope:          string(e.Scope),
		ProjectID:      e.ProjectID,
		ProjectName:    e.ProjectName,
		VendorID:       e.VendorID,
		VendorName:     e.VendorName,
		Description:    e.Description,
		Amount:         e.Amount,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
