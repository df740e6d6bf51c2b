package auth

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testOrgID  = "00000000-0000-0000-0000-000000000002"
)

type loginRepo struct {
	repository.UserRepository
	user *entity.User
	code string
}

func (r *loginRepo) FindForLogin(_ context.Context, code, email string) (*entity.User, error) {
	if code != r.code || email != r.user.Email {
		return nil, domain.NotFound("usuario no encontrado")
	}
	return r.user, nil
}

func newLoginUseCase(t *testing.T) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura-1"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &loginRepo{
		code: "AB1234",
		user: &entity.User{
			ID:             "00000000-0000-0000-0000-000000000001",
			OrganizationID: testOrgID,
			Email:          "laura@andina.co",
			PasswordHash:   string(hash),
			Role:           rbac.RoleAccountant,
		},
	}
	return NewAuthUseCase(repo, JWTConfig{Secret: testSecret, TTL: time.Hour, Issuer: "obra-api-test"})
}

func TestLogin_EmiteTokenConOrganizacion(t *testing.T) {
	uc := newLoginUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		OrganizationCode: "ab1234",
		Email:            " Laura@Andina.co",
		Password:         "clave-segura-1",
	})
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, testOrgID, claims.OrganizationID)
	assert.Equal(t, "accountant", claims.Role)
	assert.Contains(t, out.Permissions, "expense.create")
	assert.NotContains(t, out.Permissions, "project.create")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newLoginUseCase(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{OrganizationCode: "AB1234", Email: "laura@andina.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Login(ctx, dto.LoginRequest{OrganizationCode: "ZZ9999", Email: "laura@andina.co", Password: "clave-segura-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated, "organización inexistente responde igual que password incorrecto")
	assert.Equal(t, "credenciales inválidas", domain.Message(err))
}
