package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/ports"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

const materialNotFound = "material no encontrado"

// MaterialUseCase casos de uso para compras de material y sus comprobantes.
type MaterialUseCase struct {
	repo          repository.MaterialRepository
	vendors       repository.VendorRepository
	materialTypes repository.MaterialTypeRepository
	projects      repository.ProjectRepository
	receipts      ports.ReceiptStore // nil: almacenamiento deshabilitado
}

// NewMaterialUseCase construye el caso de uso. receipts puede ser nil.
func NewMaterialUseCase(
	repo repository.MaterialRepository,
	vendors repository.VendorRepository,
	materialTypes repository.MaterialTypeRepository,
	projects repository.ProjectRepository,
	receipts ports.ReceiptStore,
) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, vendors: vendors, materialTypes: materialTypes, projects: projects, receipts: receipts}
}

// Create registra una compra. Las tres referencias deben existir en la organización;
// el comprobante se sube antes del INSERT y se borra si este falla.
func (uc *MaterialUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	billDate, err := parseOptionalDate("bill_date", in.BillDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Material{
		ID:             uuid.New().String(),
		VendorID:       in.VendorID,
		MaterialTypeID: in.MaterialTypeID,
		ProjectID:      in.ProjectID,
		Unit:           strings.TrimSpace(in.Unit),
		Quantity:       in.Quantity,
		BillDate:       billDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, scope, m); err != nil {
		return nil, err
	}
	var uploaded string
	if r := optionalString(in.Receipt); r != nil {
		if uploaded, err = uc.upload(ctx, scope, *r, now); err != nil {
			return nil, err
		}
		m.Receipt = &uploaded
	}
	if err := uc.repo.Create(ctx, scope, m); err != nil {
		if uploaded != "" {
			uc.discard(ctx, uploaded)
		}
		return nil, err
	}
	created, err := uc.repo.GetByID(ctx, scope, m.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, created), nil
}

// GetByID obtiene un material; el comprobante se devuelve como URL firmada.
func (uc *MaterialUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.MaterialResponse, error) {
	if err := checkID(id, materialNotFound); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, m), nil
}

// List lista materiales.
func (uc *MaterialUseCase) List(ctx context.Context, scope tenant.Scope, in dto.MaterialFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.MaterialResponse], error) {
	bill, err := dateRange("from", in.From, "to", in.To)
	if err != nil {
		return nil, err
	}
	f := repository.MaterialFilter{Search: in.Search, ProjectID: in.ProjectID, BillDate: bill, Page: toPage(page)}
	list, total, err := uc.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *uc.toResponse(ctx, m))
	}
	return &dto.ListResponse[dto.MaterialResponse]{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// ListThin materiales para selectores.
func (uc *MaterialUseCase) ListThin(ctx context.Context, scope tenant.Scope, search string) ([]dto.OptionResponse, error) {
	list, err := uc.repo.ListThin(ctx, scope, search)
	if err != nil {
		return nil, err
	}
	return toOptions(list), nil
}

// Update actualización parcial. Un comprobante nuevo reemplaza al anterior, que se borra
// después de confirmar la fila; Receipt "" lo quita.
func (uc *MaterialUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if err := checkID(id, materialNotFound); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	refsChanged := false
	if in.VendorID != nil {
		m.VendorID, refsChanged = *in.VendorID, true
	}
	if in.MaterialTypeID != nil {
		m.MaterialTypeID, refsChanged = *in.MaterialTypeID, true
	}
	if in.ProjectID != nil {
		m.ProjectID, refsChanged = *in.ProjectID, true
	}
	if in.Unit != nil {
		m.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	if in.BillDate != nil {
		if m.BillDate, err = parseOptionalDate("bill_date", in.BillDate); err != nil {
			return nil, err
		}
	}
	if err := validateMaterial(m); err != nil {
		return nil, err
	}
	if refsChanged {
		if err := uc.checkReferences(ctx, scope, m); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	previous := m.Receipt
	var uploaded string
	if in.Receipt != nil {
		if r := optionalString(in.Receipt); r != nil {
			if uploaded, err = uc.upload(ctx, scope, *r, now); err != nil {
				return nil, err
			}
			m.Receipt = &uploaded
		} else {
			m.Receipt = nil
		}
	}
	m.UpdatedAt = now
	if err := uc.repo.Update(ctx, scope, m); err != nil {
		if uploaded != "" {
			uc.discard(ctx, uploaded)
		}
		return nil, err
	}
	if in.Receipt != nil && previous != nil && ownedBy(*previous, scope.OrganizationID()) {
		uc.discard(ctx, *previous)
	}
	updated, err := uc.repo.GetByID(ctx, scope, m.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, updated), nil
}

// Delete elimina el material y luego su comprobante.
func (uc *MaterialUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if err := checkID(id, materialNotFound); err != nil {
		return err
	}
	m, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, scope, id); err != nil {
		return err
	}
	if m.Receipt != nil && ownedBy(*m.Receipt, scope.OrganizationID()) {
		uc.discard(ctx, *m.Receipt)
	}
	return nil
}

// checkReferences una referencia ausente u de otra organización es un campo inválido.
func (uc *MaterialUseCase) checkReferences(ctx context.Context, scope tenant.Scope, m *entity.Material) error {
	checks := []struct {
		field string
		id    string
		get   func(context.Context, tenant.Scope, string) error
	}{
		{"vendor_id", m.VendorID, func(ctx context.Context, s tenant.Scope, id string) error {
			_, err := uc.vendors.GetByID(ctx, s, id)
			return err
		}},
		{"material_type_id", m.MaterialTypeID, func(ctx context.Context, s tenant.Scope, id string) error {
			_, err := uc.materialTypes.GetByID(ctx, s, id)
			return err
		}},
		{"project_id", m.ProjectID, func(ctx context.Context, s tenant.Scope, id string) error {
			_, err := uc.projects.GetByID(ctx, s, id)
			return err
		}},
	}
	for _, c := range checks {
		if err := checkRefID(c.field, c.id); err != nil {
			return err
		}
		if err := c.get(ctx, scope, c.id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.InvalidField(c.field, "no existe en la organización")
			}
			return err
		}
	}
	return nil
}

func (uc *MaterialUseCase) upload(ctx context.Context, scope tenant.Scope, dataURL string, now time.Time) (string, error) {
	if uc.receipts == nil {
		return "", domain.InvalidField("receipt", "almacenamiento de comprobantes no configurado")
	}
	img, err := parseReceipt(dataURL)
	if err != nil {
		return "", err
	}
	key := receiptKey(scope.OrganizationID(), now, img.Ext)
	if err := uc.receipts.Put(ctx, key, img.Body, img.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

// discard borra un objeto sin propagar el error: la fila ya quedó consistente.
func (uc *MaterialUseCase) discard(ctx context.Context, key string) {
	if uc.receipts == nil {
		return
	}
	if err := uc.receipts.Delete(ctx, key); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("comprobante huérfano")
	}
}

func (uc *MaterialUseCase) toResponse(ctx context.Context, m *entity.Material) *dto.MaterialResponse {
	out := &dto.MaterialResponse{
		ID:               m.ID,
		OrganizationID:   m.OrganizationID,
		VendorID:         m.VendorID,
		VendorName:       m.VendorName,
		MaterialTypeID:   m.MaterialTypeID,
		MaterialTypeName: m.MaterialTypeName,
		ProjectID:        m.ProjectID,
		ProjectName:      m.ProjectName,
		Unit:             m.Unit,
		Quantity:         m.Quantity,
		BillDate:         formatOptionalDate(m.BillDate),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Receipt != nil && uc.receipts != nil {
		url, err := uc.receipts.PresignGet(ctx, *m.Receipt)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("key", *m.Receipt).Msg("no se pudo firmar el comprobante")
		} else {
			out.ReceiptURL = &url
		}
	}
	return out
}

func validateMaterial(m *entity.Material) error {
	var fields []domain.FieldError
	if m.Unit == "" {
		fields = append(fields, domain.FieldError{Field: "unit", Message: "requerido"})
	}
	if !m.Quantity.IsPositive() {
		fields = append(fields, domain.FieldError{Field: "quantity", Message: "debe ser mayor que cero"})
	} else if !fitsNumeric(m.Quantity, 18, 3) {
		fields = append(fields, domain.FieldError{Field: "quantity", Message: "excede el máximo permitido"})
	}
	if len(fields) > 0 {
		return domain.Validation("datos de material inválidos", fields...)
	}
	return nil
}
