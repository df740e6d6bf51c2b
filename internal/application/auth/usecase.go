package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/application/usecase"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

const invalidCredentials = "credenciales inválidas"

// AuthUseCase login y emisión de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica código de organización, email y password; genera JWT.
// Usuario inexistente y password incorrecto responden igual.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.OrganizationCode))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindForLogin(ctx, code, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthenticated(invalidCredentials, nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthenticated(invalidCredentials, err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Identity{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           string(user.Role),
		OrganizationID: user.OrganizationID,
	}, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		ExpiresAt:   time.Now().Add(uc.jwtCfg.TTL),
		User:        *usecase.ToUserResponse(user),
		Permissions: usecase.PermissionNames(user.Role),
	}, nil
}
