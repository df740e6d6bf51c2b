package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectRequest(name string) dto.CreateProjectRequest {
	return dto.CreateProjectRequest{
		ProjectName:      name,
		Client:           "Constructora Andina",
		ConstructionSite: "Calle 10 # 4-20",
		StartDate:        "2024-03-01",
		Value:            decimal.NewFromInt(150_000_000),
	}
}

func TestProjectUseCase_Create_EstadoPorDefectoPending(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	scope := scopeFor(t, orgA, userA)

	out, err := uc.Create(context.Background(), scope, newProjectRequest("Torre Norte"))
	require.NoError(t, err)

	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, orgA, out.OrganizationID, "la obra queda en la organización del scope")
	assert.Equal(t, "2024-03-01", out.StartDate)
	assert.Nil(t, out.EndDate)
}

func TestProjectUseCase_Create_NombreDuplicadoEnLaOrganizacion(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	ctx := context.Background()

	_, err := uc.Create(ctx, scopeFor(t, orgA, userA), newProjectRequest("Torre Norte"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, scopeFor(t, orgA, userA), newProjectRequest("Torre Norte"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El mismo nombre en otra organización es válido.
	_, err = uc.Create(ctx, scopeFor(t, orgB, userA), newProjectRequest("Torre Norte"))
	assert.NoError(t, err)
}

func TestProjectUseCase_Create_FechaFinAnteriorAlInicio(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	in := newProjectRequest("Torre Norte")
	end := "2024-01-01"
	in.EndDate = &end

	_, err := uc.Create(context.Background(), scopeFor(t, orgA, userA), in)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Len(t, domain.Fields(err), 1)
	assert.Equal(t, "end_date", domain.Fields(err)[0].Field)
}

func TestProjectUseCase_Create_FechaMalFormada(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	in := newProjectRequest("Torre Norte")
	in.StartDate = "01/03/2024"

	_, err := uc.Create(context.Background(), scopeFor(t, orgA, userA), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectUseCase_GetByID_OtraOrganizacionEsNotFound(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	ctx := context.Background()
	created, err := uc.Create(ctx, scopeFor(t, orgA, userA), newProjectRequest("Torre Norte"))
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, scopeFor(t, orgB, userA), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(ctx, scopeFor(t, orgA, userA), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un id mal formado responde igual que uno ausente")
}

func TestProjectUseCase_Update_Parcial(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	ctx := context.Background()
	scope := scopeFor(t, orgA, userA)
	created, err := uc.Create(ctx, scope, newProjectRequest("Torre Norte"))
	require.NoError(t, err)

	status := "ongoing"
	out, err := uc.Update(ctx, scope, created.ID, dto.UpdateProjectRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "ongoing", out.Status)
	assert.Equal(t, "Torre Norte", out.ProjectName, "los campos omitidos no cambian")

	bad := "archivada"
	_, err = uc.Update(ctx, scope, created.ID, dto.UpdateProjectRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProjectUseCase_List_SoloDeLaOrganizacion(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	ctx := context.Background()
	_, err := uc.Create(ctx, scopeFor(t, orgA, userA), newProjectRequest("Torre Norte"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, scopeFor(t, orgB, userA), newProjectRequest("Puente Sur"))
	require.NoError(t, err)

	out, err := uc.List(ctx, scopeFor(t, orgA, userA), dto.ProjectFilterRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Torre Norte", out.Items[0].ProjectName)
	assert.Equal(t, 20, out.Page.Limit, "límite por defecto")
	assert.Equal(t, 1, out.Page.Total)
}

func TestProjectUseCase_Create_ValorFueraDeRango(t *testing.T) {
	uc := NewProjectUseCase(newMemProjects())
	in := newProjectRequest("Torre Norte")
	in.Value = decimal.RequireFromString("99999999999999999")

	_, err := uc.Create(context.Background(), scopeFor(t, orgA, userA), in)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Len(t, domain.Fields(err), 1)
	assert.Equal(t, "value", domain.Fields(err)[0].Field)
}
