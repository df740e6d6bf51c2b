package rbac

// permissionSet conjunto inmutable; solo se lee después de la inicialización del paquete.
type permissionSet map[Permission]struct{}

func newSet(ps ...Permission) permissionSet {
	s := make(permissionSet, len(ps))
	for _, p := range ps {
		s[p] = struct{}{}
	}
	return s
}

// rolePermissions tabla estática rol → permisos. super_admin se construye desde
// allPermissions para que nunca quede desfasado respecto a la enumeración.
var rolePermissions = map[Role]permissionSet{
	RoleSuperAdmin: newSet(allPermissions...),
	RoleAdmin: newSet(
		DashboardRead,
		ProjectRead, ProjectCreate, ProjectUpdate, ProjectDelete,
		MaterialRead, MaterialCreate, MaterialUpdate, MaterialDelete,
		ExpenseRead, ExpenseCreate, ExpenseUpdate, ExpenseDelete,
		VendorRead, VendorCreate, VendorUpdate, VendorDelete,
		MaterialTypeRead, MaterialTypeCreate, MaterialTypeUpdate, MaterialTypeDelete,
		UserRead, UserCreate, UserUpdate,
	),
	RoleAccountant: newSet(
		DashboardRead,
		ProjectRead,
		ExpenseRead, ExpenseCreate, ExpenseUpdate,
		MaterialRead, MaterialCreate, MaterialUpdate,
	),
	RoleProjectManager: newSet(
		DashboardRead,
		ProjectRead, ProjectUpdate,
		MaterialRead, MaterialCreate, MaterialUpdate,
		ExpenseRead, ExpenseCreate,
	),
	RoleSupervisor: newSet(
		DashboardRead,
		ProjectRead,
		MaterialRead, MaterialCreate,
		ExpenseRead, ExpenseCreate,
	),
	RoleSiteEngineer: newSet(
		DashboardRead,
		ProjectRead,
		MaterialRead,
		ExpenseRead,
	),
}

// PermissionsFor devuelve los permisos del rol, ordenados. Rol desconocido → vacío.
// El slice devuelto es una copia: modificarlo no altera la tabla.
func PermissionsFor(role Role) []Permission {
	set := rolePermissions[role]
	out := make([]Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sortPermissions(out)
	return out
}

// Has informa si el rol tiene el permiso.
func Has(role Role, p Permission) bool {
	_, ok := rolePermissions[role][p]
	return ok
}

// IsAuthorized exige required y todos los permisos dependientes en also.
// Sin crédito parcial; determinista y sin efectos.
func IsAuthorized(role Role, required Permission, also ...Permission) bool {
	if !Has(role, required) {
		return false
	}
	for _, p := range also {
		if !Has(role, p) {
			return false
		}
	}
	return true
}

// Missing devuelve los permisos requeridos que el rol no tiene, en el orden pedido.
func Missing(role Role, required Permission, also ...Permission) []Permission {
	var out []Permission
	for _, p := range append([]Permission{required}, also...) {
		if !Has(role, p) {
			out = append(out, p)
		}
	}
	return out
}
