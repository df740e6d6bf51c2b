package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Obra-api/internal/application/auth"
	"github.com/jhoicas/Obra-api/internal/application/organization"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Resolver       *tenant.Resolver
	Gate           *tenant.Gate
	AuthUC         *auth.AuthUseCase
	DashboardUC    *usecase.DashboardUseCase
	ProjectUC      *usecase.ProjectUseCase
	VendorUC       *usecase.VendorUseCase
	MaterialTypeUC *usecase.MaterialTypeUseCase
	MaterialUC     *usecase.MaterialUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	UserUC         *usecase.UserUseCase
	OrganizationUC *organization.UseCase
}

// Router registra las rutas de la API. Toda ruta protegida declara sus permisos;
// el handler solo recibe el Scope que emite el Gate.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	perm := func(required rbac.Permission, also ...rbac.Permission) fiber.Handler {
		return RequirePermission(deps.Gate, required, also...)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.Resolver))
	protected.Get("/permissions", Authenticated(), authHandler.Permissions)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", perm(rbac.DashboardRead), dashboardHandler.Stats)

	// Obras
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", perm(rbac.ProjectCreate), projectHandler.Create)
	projects.Get("/", perm(rbac.ProjectRead), projectHandler.List)
	projects.Get("/thin", perm(rbac.ProjectRead), projectHandler.ListThin)
	projects.Get("/:id", perm(rbac.ProjectRead), projectHandler.GetByID)
	projects.Put("/:id", perm(rbac.ProjectUpdate, rbac.ProjectRead), projectHandler.Update)
	projects.Delete("/:id", perm(rbac.ProjectDelete), projectHandler.Delete)

	// Proveedores
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", perm(rbac.VendorCreate), vendorHandler.Create)
	vendors.Get("/", perm(rbac.VendorRead), vendorHandler.List)
	vendors.Get("/thin", perm(rbac.VendorRead), vendorHandler.ListThin)
	vendors.Get("/:id", perm(rbac.VendorRead), vendorHandler.GetByID)
	vendors.Put("/:id", perm(rbac.VendorUpdate, rbac.VendorRead), vendorHandler.Update)
	vendors.Delete("/:id", perm(rbac.VendorDelete), vendorHandler.Delete)

	// Tipos de material
	types := protected.Group("/material-types")
	typeHandler := NewMaterialTypeHandler(deps.MaterialTypeUC)
	types.Post("/", perm(rbac.MaterialTypeCreate), typeHandler.Create)
	types.Get("/", perm(rbac.MaterialTypeRead), typeHandler.List)
	types.Get("/thin", perm(rbac.MaterialTypeRead), typeHandler.ListThin)
	types.Get("/:id", perm(rbac.MaterialTypeRead), typeHandler.GetByID)
	types.Put("/:id", perm(rbac.MaterialTypeUpdate, rbac.MaterialTypeRead), typeHandler.Update)
	types.Delete("/:id", perm(rbac.MaterialTypeDelete), typeHandler.Delete)

	// Materiales
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", perm(rbac.MaterialCreate), materialHandler.Create)
	materials.Get("/", perm(rbac.MaterialRead), materialHandler.List)
	materials.Get("/thin", perm(rbac.MaterialRead), materialHandler.ListThin)
	materials.Get("/:id", perm(rbac.MaterialRead), materialHandler.GetByID)
	materials.Put("/:id", perm(rbac.MaterialUpdate, rbac.MaterialRead), materialHandler.Update)
	materials.Delete("/:id", perm(rbac.MaterialDelete), materialHandler.Delete)

	// Gastos
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", perm(rbac.ExpenseCreate), expenseHandler.Create)
	expenses.Get("/", perm(rbac.ExpenseRead), expenseHandler.List)
	expenses.Get("/:id", perm(rbac.ExpenseRead), expenseHandler.GetByID)
	expenses.Put("/:id", perm(rbac.ExpenseUpdate, rbac.ExpenseRead), expenseHandler.Update)
	expenses.Delete("/:id", perm(rbac.ExpenseDelete), expenseHandler.Delete)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", perm(rbac.UserCreate), userHandler.Create)
	users.Get("/", perm(rbac.UserRead), userHandler.List)
	users.Get("/:id", perm(rbac.UserRead), userHandler.GetByID)
	users.Put("/:id", perm(rbac.UserUpdate, rbac.UserRead), userHandler.Update)

	// Organizaciones (super_admin)
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Post("/", perm(rbac.OrganizationCreate), orgHandler.Create)
	orgs.Get("/", perm(rbac.OrganizationRead), orgHandler.List)
	orgs.Get("/thin", perm(rbac.OrganizationRead), orgHandler.ListThin)
	orgs.Get("/:id", perm(rbac.OrganizationRead), orgHandler.GetByID)
	orgs.Put("/:id", perm(rbac.OrganizationUpdate, rbac.OrganizationRead), orgHandler.Update)
	orgs.Delete("/:id", perm(rbac.OrganizationDelete), orgHandler.Delete)
}
