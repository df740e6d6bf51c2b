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

const vendorNotFound = "proveedor no encontrado"

// VendorUseCase casos de uso CRUD para proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor. El nombre es único por organización: el pre-chequeo
// ahorra la ida a la base, el constraint resuelve las carreras.
func (uc *VendorUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	name := strings.TrimSpace(in.VendorName)
	if len(name) < 2 {
		return nil, domain.InvalidField("vendor_name", "mínimo 2 caracteres")
	}
	if err := uc.ensureUniqueName(ctx, scope, name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Vendor{
		ID:            uuid.New().String(),
		VendorName:    name,
		VendorAddress: strings.TrimSpace(in.VendorAddress),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, scope, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// GetByID obtiene un proveedor.
func (uc *VendorUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.VendorResponse, error) {
	if err := checkID(id, vendorNotFound); err != nil {
		return nil, err
	}
	v, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// List lista proveedores.
func (uc *VendorUseCase) List(ctx context.Context, scope tenant.Scope, search string, page dto.PageRequest) (*dto.ListResponse[dto.VendorResponse], error) {
	f := repository.ListFilter{Search: search, Page: toPage(page)}
	list, total, err := uc.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVendorResponse(v))
	}
	return &dto.ListResponse[dto.VendorResponse]{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// ListThin proveedores para selectores.
func (uc *VendorUseCase) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]dto.OptionResponse, error) {
	list, err := uc.repo.ListThin(ctx, scope, search)
	if err != nil {
		return nil, err
	}
	return toOptions(list), nil
}

// Update actualiza un proveedor.
func (uc *VendorUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	if err := checkID(id, vendorNotFound); err != nil {
		return nil, err
	}
	v, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if in.VendorName != nil {
		name := strings.TrimSpace(*in.VendorName)
		if len(name) < 2 {
			return nil, domain.InvalidField("vendor_name", "mínimo 2 caracteres")
		}
		if name != v.VendorName {
			if err := uc.ensureUniqueName(ctx, scope, name, v.ID); err != nil {
				return nil, err
			}
		}
		v.VendorName = name
	}
	if in.VendorAddress != nil {
		v.VendorAddress = strings.TrimSpace(*in.VendorAddress)
	}
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, scope, v); err != nil {
		return nil, err
	}
	return toVendorResponse(v), nil
}

// Delete elimina un proveedor; Conflict si tiene materiales o gastos.
func (uc *VendorUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := checkID(id, vendorNotFound); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, scope, id)
}

func (uc *VendorUseCase) ensureUniqueName(ctx context.Context, scope tenant.Scope, name, excludeID string) error {
	exists, err := uc.repo.ExistsByName(ctx, scope, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.Conflict("ya existe un proveedor con ese nombre")
	}
	return nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:             v.ID,
		OrganizationID: v.OrganizationID,
		VendorName:     v.VendorName,
		VendorAddress:  v.VendorAddress,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
