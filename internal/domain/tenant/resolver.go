package tenant

import (
	"errors"
	"strings"

	"github.com/jhoicas/Obra-api/internal/domain"
	"github.com/jhoicas/Obra-api/internal/domain/rbac"
)

// Claims datos que el emisor firma dentro del token.
type Claims struct {
	UserID         string
	Email          string
	Role           string
	OrganizationID string
}

// TokenVerifier verifica firma y expiración del token y devuelve sus claims.
// Lo implementa pkg/jwt; la emisión queda fuera de este paquete.
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}

var (
	errMissingToken  = errors.New("token ausente")
	errMissingClaims = errors.New("claims incompletos")
)

// Resolver traduce una credencial Bearer en un Context.
type Resolver struct {
	verifier TokenVerifier
}

// NewResolver construye el resolver sobre el verificador de tokens.
func NewResolver(verifier TokenVerifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve confía en los claims verificados tal cual: no revalida que la
// organización siga existiendo (un token de una organización borrada sigue
// siendo válido hasta su expiración, pero sus consultas no encuentran filas).
func (r *Resolver) Resolve(token string) (Context, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Context{}, domain.Unauthenticated("token requerido", errMissingToken)
	}
	claims, err := r.verifier.Verify(token)
	if err != nil {
		return Context{}, domain.Unauthenticated("token inválido o expirado", err)
	}
	if claims.UserID == "" || claims.OrganizationID == "" || claims.Role == "" {
		return Context{}, domain.Unauthenticated("token sin identidad completa", errMissingClaims)
	}
	return Context{
		UserID:         claims.UserID,
		Email:          claims.Email,
		Role:           rbac.Role(claims.Role),
		OrganizationID: claims.OrganizationID,
	}, nil
}

// ResolveHeader extrae el token de un header "Authorization: Bearer <token>".
func (r *Resolver) ResolveHeader(header string) (Context, error) {
	if header == "" {
		return Context{}, domain.Unauthenticated("Authorization header requerido", errMissingToken)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return Context{}, domain.Unauthenticated("formato: Bearer <token>", errMissingToken)
	}
	return r.Resolve(parts[1])
}
