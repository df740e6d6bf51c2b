package usecase

import (
	"context"
	"testing"

	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserRequest(email, role string) dto.CreateUserRequest {
	return dto.CreateUserRequest{Name: "Ana Pérez", Email: email, Password: "secreto-123", Role: role}
}

func TestUserUseCase_Create_HasheaYNormalizaEmail(t *testing.T) {
	repo := newMemUsers()
	uc := NewUserUseCase(repo)
	scope := scopeFor(t, orgA, userA)

	out, err := uc.Create(context.Background(), scope, rbac.RoleAdmin, newUserRequest("  Ana@Obra.CO ", "accountant"))
	require.NoError(t, err)
	assert.Equal(t, "ana@obra.co", out.Email)
	assert.Equal(t, "accountant", out.Role)

	stored, err := repo.GetByID(context.Background(), scope, out.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto-123")))
}

func TestUserUseCase_Create_AdminNoAsignaSuperAdmin(t *testing.T) {
	uc := NewUserUseCase(newMemUsers())

	_, err := uc.Create(context.Background(), scopeFor(t, orgA, userA), rbac.RoleAdmin, newUserRequest("x@obra.co", "super_admin"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(context.Background(), scopeFor(t, orgA, userA), rbac.RoleSuperAdmin, newUserRequest("x@obra.co", "super_admin"))
	assert.NoError(t, err)
}

func TestUserUseCase_Create_EmailDuplicadoSoloEnLaMismaOrganizacion(t *testing.T) {
	uc := NewUserUseCase(newMemUsers())
	ctx := context.Background()

	_, err := uc.Create(ctx, scopeFor(t, orgA, userA), rbac.RoleAdmin, newUserRequest("ana@obra.co", "supervisor"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, scopeFor(t, orgA, userA), rbac.RoleAdmin, newUserRequest("ANA@obra.co", "supervisor"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, scopeFor(t, orgB, userA), rbac.RoleAdmin, newUserRequest("ana@obra.co", "supervisor"))
	assert.NoError(t, err)
}

func TestUserUseCase_Update_AdminNoModificaSuperAdmin(t *testing.T) {
	uc := NewUserUseCase(newMemUsers())
	ctx := context.Background()
	scope := scopeFor(t, orgA, userA)
	root, err := uc.Create(ctx, scope, rbac.RoleSuperAdmin, newUserRequest("root@obra.co", "super_admin"))
	require.NoError(t, err)

	name := "Otro"
	_, err = uc.Update(ctx, scope, rbac.RoleAdmin, root.ID, dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUseCase_Update_CambiaRol(t *testing.T) {
	uc := NewUserUseCase(newMemUsers())
	ctx := context.Background()
	scope := scopeFor(t, orgA, userA)
	u, err := uc.Create(ctx, scope, rbac.RoleAdmin, newUserRequest("eng@obra.co", "site_engineer"))
	require.NoError(t, err)

	role := "project_manager"
	out, err := uc.Update(ctx, scope, rbac.RoleAdmin, u.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "project_manager", out.Role)

	bad := "root"
	_, err = uc.Update(ctx, scope, rbac.RoleAdmin, u.ID, dto.UpdateUserRequest{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
