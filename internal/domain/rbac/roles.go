package rbac

// Role es el rol de un usuario dentro de su organización. Conjunto cerrado.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleAdmin          Role = "admin"
	RoleAccountant     Role = "accountant"
	RoleProjectManager Role = "project_manager"
	RoleSupervisor     Role = "supervisor"
	RoleSiteEngineer   Role = "site_engineer"
)

// Roles devuelve todos los roles en orden de privilegio descendente.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleAccountant, RoleProjectManager, RoleSupervisor, RoleSiteEngineer}
}

// Valid informa si r es uno de los roles definidos.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// ParseRole convierte el valor persistido o del token en Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
