package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/entity"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, organization_id, name, email, password_hash, role, avatar, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row, extra ...any) (*entity.User, error) {
	var u entity.User
	dest := []any{
		&u.ID, &u.OrganizationID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar,
		&u.CreatedAt, &u.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario en la organización del scope.
func (r *UserRepo) Create(ctx context.Context, scope tenant.Scope, u *entity.User) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	u.OrganizationID = org
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		u.ID, org, u.Name, u.Email, u.PasswordHash, u.Role, u.Avatar, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return writeError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario de la organización.
func (r *UserRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.User, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND organization_id = $2`
	u, err := scanUser(r.q.QueryRow(ctx, query, id, org))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("usuario no encontrado")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List lista usuarios buscando por nombre o email.
func (r *UserRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.User, int, error) {
	org, err := orgID(scope)
	if err != nil {
		return nil, 0, err
	}
	filtered := `
		FROM users
		WHERE organization_id = $1 AND ($2 = '' OR name ILIKE $2 OR email ILIKE $2)`
	query := `SELECT ` + userColumns + `, count(*) OVER()` + filtered + `
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, org, likePattern(f.Search), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.User
		total int
	)
	for rows.Next() {
		u, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	if total, err = pageTotal(ctx, r.q, len(list), total, f.Offset, `SELECT count(*)`+filtered, org, likePattern(f.Search)); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return list, total, nil
}

// ExistsByEmail pre-chequeo de email dentro de la organización.
func (r *UserRepo) ExistsByEmail(ctx context.Context, scope tenant.Scope, email, excludeID string) (bool, error) {
	org, err := orgID(scope)
	if err != nil {
		return false, err
	}
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE organization_id = $1 AND email = $2 AND ($3 = '' OR id::text <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, org, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

// Update actualiza nombre, avatar, rol y hash.
func (r *UserRepo) Update(ctx context.Context, scope tenant.Scope, u *entity.User) error {
	org, err := orgID(scope)
	if err != nil {
		return err
	}
	query := `
		UPDATE users SET name = $3, password_hash = $4, role = $5, avatar = $6, updated_at = $7
		WHERE id = $1 AND organization_id = $2`
	cmd, err := r.q.Exec(ctx, query, u.ID, org, u.Name, u.PasswordHash, u.Role, u.Avatar, u.UpdatedAt)
	if err != nil {
		return writeError("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("usuario no encontrado")
	}
	return nil
}

// FindForLogin busca por código de organización y email.
func (r *UserRepo) FindForLogin(ctx context.Context, organizationCode, email string) (*entity.User, error) {
	query := `
		SELECT u.id, u.organization_id, u.name, u.email, u.password_hash, u.role, u.avatar, u.created_at, u.updated_at
		FROM users u
		JOIN organizations o ON o.id = u.organization_id
		WHERE o.code = $1 AND u.email = $2`
	u, err := scanUser(r.q.QueryRow(ctx, query, organizationCode, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("usuario no encontrado")
		}
		return nil, fmt.Errorf("find user for login: %w", err)
	}
	return u, nil
}
