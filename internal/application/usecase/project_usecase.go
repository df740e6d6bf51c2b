package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

const projectNotFound = "obra no encontrada"

// ProjectUseCase casos de uso CRUD para obras.
type ProjectUseCase struct {
	repo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

// Create crea una obra en la organización del scope.
func (uc *ProjectUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("end_date", in.EndDate)
	if err != nil {
		return nil, err
	}
	status := entity.ProjectPending
	if in.Status != "" {
		status = entity.ProjectStatus(in.Status)
	}
	now := time.Now()
	p := &entity.Project{
		ID:               uuid.New().String(),
		ProjectName:      strings.TrimSpace(in.ProjectName),
		Client:           strings.TrimSpace(in.Client),
		ConstructionSite: strings.TrimSpace(in.ConstructionSite),
		StartDate:        start,
		EndDate:          end,
		Value:            in.Value,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, scope, p.ProjectName, ""); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, scope, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// GetByID obtiene una obra.
func (uc *ProjectUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.ProjectResponse, error) {
	if err := checkID(id, projectNotFound); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List lista obras con filtros y paginación.
func (uc *ProjectUseCase) List(ctx context.Context, scope tenant.Scope, in dto.ProjectFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.ProjectResponse], error) {
	start, err := dateRange("start_from", in.StartFrom, "start_to", in.StartTo)
	if err != nil {
		return nil, err
	}
	f := repository.ProjectFilter{
		Search: in.Search,
		Status: entity.ProjectStatus(in.Status),
		Start:  start,
		Page:   toPage(page),
	}
	list, total, err := uc.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ListResponse[dto.ProjectResponse]{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// ListThin obras para selectores.
func (uc *ProjectUseCase) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]dto.OptionResponse, error) {
	list, err := uc.repo.ListThin(ctx, scope, search)
	if err != nil {
		return nil, err
	}
	return toOptions(list), nil
}

// Update actualización parcial de una obra.
func (uc *ProjectUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	if err := checkID(id, projectNotFound); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.ProjectName != nil {
		p.ProjectName = strings.TrimSpace(*in.ProjectName)
	}
	if in.Client != nil {
		p.Client = strings.TrimSpace(*in.Client)
	}
	if in.ConstructionSite != nil {
		p.ConstructionSite = strings.TrimSpace(*in.ConstructionSite)
	}
	if in.StartDate != nil {
		if p.StartDate, err = parseDate("start_date", *in.StartDate); err != nil {
			return nil, err
		}
	}
	if in.EndDate != nil {
		if p.EndDate, err = parseOptionalDate("end_date", in.EndDate); err != nil {
			return nil, err
		}
	}
	if in.Value != nil {
		p.Value = *in.Value
	}
	if in.Status != nil {
		p.Status = entity.ProjectStatus(*in.Status)
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if in.ProjectName != nil {
		if err := uc.ensureUniqueName(ctx, scope, p.ProjectName, p.ID); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, scope, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Delete elimina una obra; falla con Conflict si tiene materiales o gastos.
func (uc *ProjectUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := checkID(id, projectNotFound); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, scope, id)
}

func (uc *ProjectUseCase) ensureUniqueName(ctx context.Context, scope tenant.Scope, name, excludeID string) error {
	exists, err := uc.repo.ExistsByName(ctx, scope, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("ya existe una obra con ese nombre")
	}
	return nil
}

func validateProject(p *entity.Project) error {
	var fields []domain.FieldError
	if len(p.ProjectName) < 2 {
		fields = append(fields, domain.FieldError{Field: "project_name", Message: "mínimo 2 caracteres"})
	}
	if !p.Status.Valid() {
		fields = append(fields, domain.FieldError{Field: "status", Message: "estado inválido"})
	}
	if p.Value.IsNegative() {
		fields = append(fields, domain.FieldError{Field: "value", Message: "no puede ser negativo"})
	} else if !fitsNumeric(p.Value, 18, 2) {
		fields = append(fields, domain.FieldError{Field: "value", Message: "excede el máximo permitido"})
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		fields = append(fields, domain.FieldError{Field: "end_date", Message: "anterior a la fecha de inicio"})
	}
	if len(fields) > 0 {
		return domain.Validation("datos de obra inválidos", fields...)
	}
	return nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:               p.ID,
		OrganizationID:   p.OrganizationID,
		ProjectName:      p.ProjectName,
		Client:           p.Client,
		ConstructionSite: p.ConstructionSite,
		StartDate:        formatDate(p.StartDate),
		EndDate:          formatOptionalDate(p.EndDate),
		Value:            p.Value,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
