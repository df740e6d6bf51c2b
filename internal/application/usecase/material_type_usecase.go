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
	"github.com/jhoicas/Obra-api/pkg/slug"
)

const materialTypeNotFound = "tipo de material no encontrado"

// MaterialTypeUseCase casos de uso para tipos de material.
type MaterialTypeUseCase struct {
	repo repository.MaterialTypeRepository
}

// NewMaterialTypeUseCase construye el caso de uso.
func NewMaterialTypeUseCase(repo repository.MaterialTypeRepository) *MaterialTypeUseCase {
	return &MaterialTypeUseCase{repo: repo}
}

// NewMaterialType arma un tipo con su slug; lo usa también el alta de organización.
func NewMaterialType(name string, now time.Time) (*entity.MaterialType, error) {
	name = strings.TrimSpace(name)
	s := slug.Make(name)
	if s == "" {
		return nil, domain.InvalidField("name", "debe contener letras o dígitos")
	}
	return &entity.MaterialType{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      s,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Create crea un tipo de material; el slug derivado es único por organización.
func (uc *MaterialTypeUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.MaterialTypeRequest) (*dto.MaterialTypeResponse, error) {
	mt, err := NewMaterialType(in.Name, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueSlug(ctx, scope, mt.Slug, ""); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, scope, mt); err != nil {
		return nil, err
	}
	return ToMaterialTypeResponse(mt), nil
}

// GetByID obtiene un tipo de material.
func (uc *MaterialTypeUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.MaterialTypeResponse, error) {
	if err := checkID(id, materialTypeNotFound); err != nil {
		return nil, err
	}
	mt, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return ToMaterialTypeResponse(mt), nil
}

// List lista tipos de material.
func (uc *MaterialTypeUseCase) List(ctx context.Context, scope tenant.Scope, search string, page dto.PageRequest) (*dto.ListResponse[dto.MaterialTypeResponse], error) {
	f := repository.ListFilter{Search: search, Page: toPage(page)}
	list, total, err := uc.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialTypeResponse, 0, len(list))
	for _, mt := range list {
		items = append(items, *ToMaterialTypeResponse(mt))
	}
	return &dto.ListResponse[dto.MaterialTypeResponse]{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// ListThin tipos de material para selectores.
func (uc *MaterialTypeUseCase) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]dto.OptionResponse, error) {
	list, err := uc.repo.ListThin(ctx, scope, search)
	if err != nil {
		return nil, err
	}
	return toOptions(list), nil
}

// Update renombra el tipo y recalcula el slug.
func (uc *MaterialTypeUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.MaterialTypeRequest) (*dto.MaterialTypeResponse, error) {
	if err := checkID(id, materialTypeNotFound); err != nil {
		return nil, err
	}
	mt, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	renamed, err := NewMaterialType(in.Name, time.Now())
	if err != nil {
		return nil, err
	}
	if renamed.Slug != mt.Slug {
		if err := uc.ensureUniqueSlug(ctx, scope, renamed.Slug, mt.ID); err != nil {
			return nil, err
		}
	}
	mt.Name, mt.Slug, mt.UpdatedAt = renamed.Name, renamed.Slug, renamed.UpdatedAt
	if err := uc.repo.Update(ctx, scope, mt); err != nil {
		return nil, err
	}
	return ToMaterialTypeResponse(mt), nil
}

// Delete elimina el tipo; Conflict si algún material lo referencia.
func (uc *MaterialTypeUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := checkID(id, materialTypeNotFound); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, scope, id)
}

func (uc *MaterialTypeUseCase) ensureUniqueSlug(ctx context.Context, scope tenant.Scope, s, excludeID string) error {
	exists, err := uc.repo.ExistsBySlug(ctx, scope, s, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("ya existe un tipo de material con ese nombre")
	}
	return nil
}

// ToMaterialTypeResponse salida de un tipo de material.
func ToMaterialTypeResponse(mt *entity.MaterialType) *dto.MaterialTypeResponse {
	if mt == nil {
		return nil
	}
	return &dto.MaterialTypeResponse{
		ID:             mt.ID,
		OrganizationID: mt.OrganizationID,
		Name:           mt.Name,
		Slug:           mt.Slug,
		CreatedAt:      mt.CreatedAt,
		UpdatedAt:      mt.UpdatedAt,
	}
}
