//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/organization"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"github.com/jhoicas/Obra-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Obra-api/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// setupPool levanta PostgreSQL en un contenedor y aplica el esquema.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		t.Skip("Docker no disponible, se omiten las pruebas de integración")
	}
	_ = provider.Close()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("obra_test"),
		tcpostgres.WithUsername("obra"),
		tcpostgres.WithPassword("obra_test_password"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("no se pudo iniciar PostgreSQL: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = container.Terminate(stopCtx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 5, MinConns: 0})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.ApplySchema(ctx, pool))
	// idempotente
	require.NoError(t, postgres.ApplySchema(ctx, pool))
	return pool
}

type tenantFixture struct {
	scope   tenant.Scope
	orgID   string
	adminID string
	typeIDs []string
}

func bootstrapOrg(t *testing.T, pool *pgxpool.Pool, code, email string) tenantFixture {
	t.Helper()
	uc := organization.NewUseCase(postgres.NewOrganizationRepository(pool), postgres.NewTxRunner(pool))
	out, err := uc.Bootstrap(context.Background(), dto.CreateOrganizationRequest{
		Name: "Constructora " + code,
		Code: code,
		Admin: dto.AdminUserRequest{
			Name:     "Admin " + code,
			Email:    email,
			Password: "s3cret-123",
		},
	}, rbac.RoleAdmin)
	require.NoError(t, err)

	tc := tenant.Context{UserID: out.Admin.ID, Role: rbac.RoleAdmin, OrganizationID: out.Organization.ID}
	scope, err := tenant.NewGate(nil).Authorize(tc, nil, rbac.DashboardRead)
	require.NoError(t, err)

	f := tenantFixture{scope: scope, orgID: out.Organization.ID, adminID: out.Admin.ID}
	for _, mt := range out.MaterialTypes {
		f.typeIDs = append(f.typeIDs, mt.ID)
	}
	return f
}

func newVendor(name string) *entity.Vendor {
	now := time.Now().UTC()
	return &entity.Vendor{ID: uuid.NewString(), VendorName: name, VendorAddress: "Calle 1", CreatedAt: now, UpdatedAt: now}
}

func newProject(name string) *entity.Project {
	now := time.Now().UTC()
	return &entity.Project{
		ID: uuid.NewString(), ProjectName: name, Client: "Cliente", ConstructionSite: "Lote 4",
		StartDate: now.Truncate(24 * time.Hour), Value: decimal.NewFromInt(1000),
		Status: entity.ProjectPending, CreatedAt: now, UpdatedAt: now,
	}
}

func newMaterial(vendorID, typeID, projectID string) *entity.Material {
	now := time.Now().UTC()
	return &entity.Material{
		ID: uuid.NewString(), VendorID: vendorID, MaterialTypeID: typeID, ProjectID: projectID,
		Unit: "kg", Quantity: decimal.NewFromInt(50), CreatedAt: now, UpdatedAt: now,
	}
}

func TestIntegracion(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	a := bootstrapOrg(t, pool, "AA1001", "admin@a.co")
	b := bootstrapOrg(t, pool, "BB2002", "admin@b.co")

	vendors := postgres.NewVendorRepository(pool)
	projects := postgres.NewProjectRepository(pool)
	materials := postgres.NewMaterialRepository(pool)
	materialTypes := postgres.NewMaterialTypeRepository(pool)
	users := postgres.NewUserRepository(pool)

	t.Run("bootstrap crea tipos por defecto", func(t *testing.T) {
		list, total, err := materialTypes.List(ctx, a.scope, repository.ListFilter{Page: repository.Page{Limit: 100}})
		require.NoError(t, err)
		assert.Equal(t, len(entity.DefaultMaterialTypes), total)
		assert.Len(t, list, total)
		for _, mt := range list {
			assert.Equal(t, a.orgID, mt.OrganizationID)
		}
	})

	t.Run("aislamiento entre organizaciones", func(t *testing.T) {
		v := newVendor("Cementos del Valle")
		require.NoError(t, vendors.Create(ctx, a.scope, v))

		_, err := vendors.GetByID(ctx, b.scope, v.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = vendors.Update(ctx, b.scope, &entity.Vendor{ID: v.ID, VendorName: "robado", UpdatedAt: time.Now()})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = vendors.Delete(ctx, b.scope, v.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		list, total, err := vendors.List(ctx, b.scope, repository.ListFilter{Page: repository.Page{Limit: 20}})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)

		got, err := vendors.GetByID(ctx, a.scope, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cementos del Valle", got.VendorName)
	})

	t.Run("nombre de proveedor único por organización", func(t *testing.T) {
		require.NoError(t, vendors.Create(ctx, a.scope, newVendor("Ferretería Norte")))
		require.NoError(t, vendors.Create(ctx, b.scope, newVendor("Ferretería Norte")))

		err := vendors.Create(ctx, a.scope, newVendor("Ferretería Norte"))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("referencia de otra organización", func(t *testing.T) {
		vA := newVendor("Proveedor A")
		require.NoError(t, vendors.Create(ctx, a.scope, vA))
		pB := newProject("Torre B")
		require.NoError(t, projects.Create(ctx, b.scope, pB))

		err := materials.Create(ctx, b.scope, newMaterial(vA.ID, b.typeIDs[0], pB.ID))
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "vendor_id", domain.Fields(err)[0].Field)
	})

	t.Run("tipo de material con materiales no se borra", func(t *testing.T) {
		v := newVendor("Arenas SAS")
		require.NoError(t, vendors.Create(ctx, a.scope, v))
		p := newProject("Edificio Central")
		require.NoError(t, projects.Create(ctx, a.scope, p))
		m := newMaterial(v.ID, a.typeIDs[0], p.ID)
		require.NoError(t, materials.Create(ctx, a.scope, m))
		before, err := materialTypes.GetByID(ctx, a.scope, a.typeIDs[0])
		require.NoError(t, err)

		// el rechazo se repite igual y no toca ninguna fila
		for i := 0; i < 2; i++ {
			err = materialTypes.Delete(ctx, a.scope, a.typeIDs[0])
			assert.ErrorIs(t, err, domain.ErrConflict, "intento %d", i+1)
		}
		after, err := materialTypes.GetByID(ctx, a.scope, a.typeIDs[0])
		require.NoError(t, err)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.Slug, after.Slug)
		kept, err := materials.GetByID(ctx, a.scope, m.ID)
		require.NoError(t, err)
		assert.Equal(t, a.typeIDs[0], kept.MaterialTypeID)
		assert.True(t, m.Quantity.Equal(kept.Quantity))

		err = projects.Delete(ctx, a.scope, p.ID)
		assert.ErrorIs(t, err, domain.ErrConflict)

		assert.NoError(t, materialTypes.Delete(ctx, a.scope, a.typeIDs[len(a.typeIDs)-1]))
	})

	t.Run("listado filtrado por obra", func(t *testing.T) {
		v := newVendor("Hierros")
		require.NoError(t, vendors.Create(ctx, a.scope, v))
		p1, p2 := newProject("Obra Uno"), newProject("Obra Dos")
		require.NoError(t, projects.Create(ctx, a.scope, p1))
		require.NoError(t, projects.Create(ctx, a.scope, p2))
		require.NoError(t, materials.Create(ctx, a.scope, newMaterial(v.ID, a.typeIDs[1], p1.ID)))
		require.NoError(t, materials.Create(ctx, a.scope, newMaterial(v.ID, a.typeIDs[1], p2.ID)))

		list, total, err := materials.List(ctx, a.scope, repository.MaterialFilter{ProjectID: p1.ID, Page: repository.Page{Limit: 20}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, list, 1)
		assert.Equal(t, "Obra Uno", list[0].ProjectName)
		assert.Equal(t, "Hierros", list[0].VendorName)
	})

	t.Run("total con offset más allá del final", func(t *testing.T) {
		_, total, err := vendors.List(ctx, a.scope, repository.ListFilter{Page: repository.Page{Limit: 20}})
		require.NoError(t, err)
		require.NotZero(t, total)

		list, pastEnd, err := vendors.List(ctx, a.scope, repository.ListFilter{Page: repository.Page{Limit: 20, Offset: total + 10}})
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Equal(t, total, pastEnd)

		types, typesTotal, err := materialTypes.List(ctx, a.scope, repository.ListFilter{Search: "zzz-sin-coincidencias", Page: repository.Page{Limit: 20, Offset: 20}})
		require.NoError(t, err)
		assert.Empty(t, types)
		assert.Zero(t, typesTotal)
	})

	t.Run("login por código de organización", func(t *testing.T) {
		u, err := users.FindForLogin(ctx, "BB2002", "admin@b.co")
		require.NoError(t, err)
		assert.Equal(t, b.orgID, u.OrganizationID)

		_, err = users.FindForLogin(ctx, "AA1001", "admin@b.co")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("bootstrap fallido no deja filas", func(t *testing.T) {
		orgRepo := postgres.NewOrganizationRepository(pool)
		orgID := uuid.NewString()
		boom := errors.New("falla después del insert")

		err := postgres.NewTxRunner(pool).RunBootstrap(ctx, func(
			o repository.OrganizationRepository,
			_ repository.MaterialTypeRepository,
			_ repository.UserRepository,
		) error {
			now := time.Now().UTC()
			if err := o.Create(ctx, &entity.Organization{ID: orgID, Name: "Efímera", Code: "CC3003", CreatedAt: now, UpdatedAt: now}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = orgRepo.GetByID(ctx, orgID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		exists, err := orgRepo.ExistsByCode(ctx, "CC3003", "")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("código de organización duplicado", func(t *testing.T) {
		uc := organization.NewUseCase(postgres.NewOrganizationRepository(pool), postgres.NewTxRunner(pool))
		_, err := uc.Bootstrap(ctx, dto.CreateOrganizationRequest{
			Name:  "Otra",
			Code:  "AA1001",
			Admin: dto.AdminUserRequest{Name: "X", Email: "x@x.co", Password: "s3cret-123"},
		}, rbac.RoleAdmin)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("cantidad fuera de rango es validación", func(t *testing.T) {
		v := newVendor("Gravas")
		require.NoError(t, vendors.Create(ctx, a.scope, v))
		p := newProject("Bodega Sur")
		require.NoError(t, projects.Create(ctx, a.scope, p))
		m := newMaterial(v.ID, a.typeIDs[1], p.ID)
		m.Quantity = decimal.RequireFromString("1000000000000000")

		err := materials.Create(ctx, a.scope, m)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "quantity", domain.Fields(err)[0].Field)
	})

	t.Run("borrar organización elimina todas sus filas", func(t *testing.T) {
		v := newVendor("Proveedor B")
		require.NoError(t, vendors.Create(ctx, b.scope, v))
		p := newProject("Obra B")
		require.NoError(t, projects.Create(ctx, b.scope, p))
		require.NoError(t, materials.Create(ctx, b.scope, newMaterial(v.ID, b.typeIDs[0], p.ID)))
		now := time.Now().UTC()
		require.NoError(t, postgres.NewExpenseRepository(pool).Create(ctx, b.scope, &entity.Expense{
			ID: uuid.NewString(), Date: now.Truncate(24 * time.Hour), Scope: entity.ExpenseScopeProject,
			ProjectID: &p.ID, VendorID: &v.ID, Amount: decimal.NewFromInt(250),
			CreatedBy: b.adminID, CreatedAt: now, UpdatedAt: now,
		}))

		tables := []string{"users", "projects", "vendors", "material_types", "materials", "expenses"}
		countA := map[string]int{}
		for _, table := range tables {
			countA[table] = countRows(t, pool, table, a.orgID)
			require.NotZero(t, countRows(t, pool, table, b.orgID), table)
		}

		orgRepo := postgres.NewOrganizationRepository(pool)
		require.NoError(t, orgRepo.Delete(ctx, b.orgID))

		_, err := orgRepo.GetByID(ctx, b.orgID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		for _, table := range tables {
			assert.Zero(t, countRows(t, pool, table, b.orgID), table)
			assert.Equal(t, countA[table], countRows(t, pool, table, a.orgID), table)
		}
		assert.ErrorIs(t, orgRepo.Delete(ctx, b.orgID), domain.ErrNotFound)

		// el token de b sigue vigente pero ya no ve ni crea nada
		list, total, err := vendors.List(ctx, b.scope, repository.ListFilter{Page: repository.Page{Limit: 20}})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)
		err = vendors.Create(ctx, b.scope, newVendor("Huérfano"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func countRows(t *testing.T, pool *pgxpool.Pool, table, orgID string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE organization_id = $1`, orgID).Scan(&n)
	require.NoError(t, err)
	return n
}
