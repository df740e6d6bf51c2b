package rbac

import "sort"

// Permission nombra una acción sobre un recurso ("project.read").
// Conjunto cerrado: no se extiende en tiempo de ejecución.
type Permission string

const (
	DashboardRead Permission = "dashboard.read"

	OrganizationRead   Permission = "organization.read"
	OrganizationCreate Permission = "organization.create"
	OrganizationUpdate Permission = "organization.update"
	OrganizationDelete Permission = "organization.delete"

	ProjectRead   Permission = "project.read"
	ProjectCreate Permission = "project.create"
	ProjectUpdate Permission = "project.update"
	ProjectDelete Permission = "project.delete"

	MaterialRead   Permission = "material.read"
	MaterialCreate Permission = "material.create"
	MaterialUpdate Permission = "material.update"
	MaterialDelete Permission = "material.delete"

	MaterialTypeRead   Permission = "material_type.read"
	MaterialTypeCreate Permission = "material_type.create"
	MaterialTypeUpdate Permission = "material_type.update"
	MaterialTypeDelete Permission = "material_type.delete"

	ExpenseRead   Permission = "expense.read"
	ExpenseCreate Permission = "expense.create"
	ExpenseUpdate Permission = "expense.update"
	ExpenseDelete Permission = "expense.delete"

	VendorRead   Permission = "vendor.read"
	VendorCreate Permission = "vendor.create"
	VendorUpdate Permission = "vendor.update"
	VendorDelete Permission = "vendor.delete"

	UserRead   Permission = "user.read"
	UserCreate Permission = "user.create"
	UserUpdate Permission = "user.update"
)

// allPermissions es la enumeración completa. Toda Permission nueva se agrega aquí
// y con eso queda incluida en el conjunto de super_admin.
var allPermissions = []Permission{
	DashboardRead,
	OrganizationRead, OrganizationCreate, OrganizationUpdate, OrganizationDelete,
	ProjectRead, ProjectCreate, ProjectUpdate, ProjectDelete,
	MaterialRead, MaterialCreate, MaterialUpdate, MaterialDelete,
	MaterialTypeRead, MaterialTypeCreate, MaterialTypeUpdate, MaterialTypeDelete,
	ExpenseRead, ExpenseCreate, ExpenseUpdate, ExpenseDelete,
	VendorRead, VendorCreate, VendorUpdate, VendorDelete,
	UserRead, UserCreate, UserUpdate,
}

// AllPermissions devuelve una copia de la enumeración completa.
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// Valid informa si p pertenece a la enumeración.
func (p Permission) Valid() bool {
	_, ok := knownPermissions[p]
	return ok
}

var knownPermissions = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(allPermissions))
	for _, p := range allPermissions {
		m[p] = struct{}{}
	}
	return m
}()

func sortPermissions(ps []Permission) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}
