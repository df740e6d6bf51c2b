package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Obra-api/internal/application/dto"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	"golang.org/x/crypto/bcrypt"
)

const userNotFound = "usuario no encontrado"

// UserUseCase casos de uso de usuarios de la organización.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// NewUser arma un usuario con la contraseña hasheada (bcrypt); lo usa también el alta de organización.
func NewUser(name, email, password string, role rbac.Role, now time.Time) (*entity.User, error) {
	if !role.Valid() {
		return nil, domain.InvalidField("role", "rol inválido")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.InvalidField("password", "contraseña inválida")
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Create crea un usuario en la organización del scope. Solo super_admin asigna super_admin.
func (uc *UserUseCase) Create(ctx context.Context, scope tenant.Scope, actor rbac.Role, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := rbac.Role(in.Role)
	if err := canAssign(actor, role); err != nil {
		return nil, err
	}
	u, err := NewUser(in.Name, in.Email, in.Password, role, time.Now())
	if err != nil {
		return nil, err
	}
	u.Avatar = optionalString(in.Avatar)
	exists, err := uc.repo.ExistsByEmail(ctx, scope, u.Email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("ya existe un usuario con ese email en la organización")
	}
	if err := uc.repo.Create(ctx, scope, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// GetByID obtiene un usuario de la organización.
func (uc *UserUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.UserResponse, error) {
	if err := checkID(id, userNotFound); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// List lista usuarios de la organización.
func (uc *UserUseCase) List(ctx context.Context, scope tenant.Scope, search string, page dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	f := repository.ListFilter{Search: search, Page: toPage(page)}
	list, total, err := uc.repo.List(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.ListResponse[dto.UserResponse]{Items: items, Page: pageResponse(f.Page, total)}, nil
}

// Update cambia nombre, avatar, rol o contraseña. El email no cambia.
func (uc *UserUseCase) Update(ctx context.Context, scope tenant.Scope, actor rbac.Role, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := checkID(id, userNotFound); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if u.Role == rbac.RoleSuperAdmin && actor != rbac.RoleSuperAdmin {
		return nil, domain.Forbidden("solo super_admin modifica a otro super_admin")
	}
	if in.Role != nil {
		role := rbac.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.InvalidField("role", "rol inválido")
		}
		if err := canAssign(actor, role); err != nil {
			return nil, err
		}
		u.Role = role
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Avatar != nil {
		u.Avatar = optionalString(in.Avatar)
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.InvalidField("password", "contraseña inválida")
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, scope, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

func canAssign(actor, role rbac.Role) error {
	if role == rbac.RoleSuperAdmin && actor != rbac.RoleSuperAdmin {
		return domain.Forbidden("solo super_admin asigna el rol super_admin")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse salida pública de un usuario; nunca incluye el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		Avatar:         u.Avatar,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
