package organization

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

const notFound = "organización no encontrada"

// UseCase alta y administración de organizaciones (tenants).
type UseCase struct {
	repo repository.OrganizationRepository
	tx   TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.OrganizationRepository, tx TxRunner) *UseCase {
	return &UseCase{repo: repo, tx: tx}
}

// Bootstrap crea la organización, sus tipos de material por defecto y su
// administrador en una sola transacción: o quedan los tres o ninguno.
// adminRole es admin desde la API y super_admin para la primera organización (obractl).
func (uc *UseCase) Bootstrap(ctx context.Context, in dto.CreateOrganizationRequest, adminRole rbac.Role) (*dto.BootstrapResponse, error) {
	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Address:   strings.TrimSpace(in.Address),
		ContactNo: strings.TrimSpace(in.ContactNo),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !entity.ValidOrganizationCode(org.Code) {
		return nil, domain.InvalidField("code", "formato: 2 letras mayúsculas + 4 dígitos (AB1234)")
	}
	admin, err := usecase.NewUser(in.Admin.Name, in.Admin.Email, in.Admin.Password, adminRole, now)
	if err != nil {
		return nil, err
	}
	types := make([]*entity.MaterialType, 0, len(entity.DefaultMaterialTypes))
	for _, name := range entity.DefaultMaterialTypes {
		mt, err := usecase.NewMaterialType(name, now)
		if err != nil {
			return nil, err
		}
		types = append(types, mt)
	}
	if err := uc.ensureUniqueCode(ctx, org.Code, ""); err != nil {
		return nil, err
	}

	err = uc.tx.RunBootstrap(ctx, func(
		orgRepo repository.OrganizationRepository,
		materialTypeRepo repository.MaterialTypeRepository,
		userRepo repository.UserRepository,
	) error {
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		scope := tenant.Bootstrap(org.ID)
		if err := materialTypeRepo.CreateMany(ctx, scope, types); err != nil {
			return err
		}
		return userRepo.Create(ctx, scope, admin)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.BootstrapResponse{
		Organization:  *toResponse(org),
		Admin:         *usecase.ToUserResponse(admin),
		MaterialTypes: make([]dto.MaterialTypeResponse, 0, len(types)),
	}
	for _, mt := range types {
		out.MaterialTypes = append(out.MaterialTypes, *usecase.ToMaterialTypeResponse(mt))
	}
	return out, nil
}

// GetByID obtiene una organización.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound(notFound)
	}
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(org), nil
}

// List lista organizaciones.
func (uc *UseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ListResponse[dto.OrganizationResponse], error) {
	page.DefaultPage()
	f := repository.ListFilter{Search: search, Page: repository.Page{Limit: page.Limit, Offset: page.Offset}}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toResponse(o))
	}
	return &dto.ListResponse[dto.OrganizationResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListThin organizaciones para selectores.
func (uc *UseCase) ListThin(ctx context.Context, search string) ([]dto.OptionResponse, error) {
	list, err := uc.repo.ListThin(ctx, search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OptionResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.OptionResponse{ID: o.ID, Name: o.Name})
	}
	return out, nil
}

// Update actualización parcial de una organización.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound(notFound)
	}
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		org.Name = strings.TrimSpace(*in.Name)
	}
	if in.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*in.Code))
		if !entity.ValidOrganizationCode(code) {
			return nil, domain.InvalidField("code", "formato: 2 letras mayúsculas + 4 dígitos (AB1234)")
		}
		if code != org.Code {
			if err := uc.ensureUniqueCode(ctx, code, org.ID); err != nil {
				return nil, err
			}
		}
		org.Code = code
	}
	if in.Address != nil {
		org.Address = strings.TrimSpace(*in.Address)
	}
	if in.ContactNo != nil {
		org.ContactNo = strings.TrimSpace(*in.ContactNo)
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	return toResponse(org), nil
}

// Delete elimina la organización y, en cascada, todo lo que le pertenece.
// Los tokens emitidos siguen siendo válidos hasta expirar pero ya no encuentran filas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NotFound(notFound)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UseCase) ensureUniqueCode(ctx context.Context, code, excludeID string) error {
	exists, err := uc.repo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("ya existe una organización con ese código")
	}
	return nil
}

func toResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Code:      o.Code,
		Address:   o.Address,
		ContactNo: o.ContactNo,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
