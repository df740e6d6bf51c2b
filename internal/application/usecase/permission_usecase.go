package usecase

import (
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
)

// PermissionNames permisos del rol como strings ordenados.
func PermissionNames(role rbac.Role) []string {
	perms := rbac.PermissionsFor(role)
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

// MyPermissions permisos efectivos del usuario autenticado.
func MyPermissions(role rbac.Role) *dto.PermissionsResponse {
	return &dto.PermissionsResponse{Role: string(role), Permissions: PermissionNames(role)}
}
