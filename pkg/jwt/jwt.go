package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
)

// Claims incluye los claims estándar JWT más la identidad del tenant.
// Los nombres JSON (id, email, role, organizationId) son el contrato con los clientes.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"id"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId"`
}

// Identity datos que se firman en el token.
type Identity struct {
	UserID         string
	Email          string
	Role           string
	OrganizationID string
}

var errEmptySecret = errors.New("jwt: secret vacío")

// Generate genera un token JWT HS256 firmado con la identidad del usuario.
func Generate(secret, issuer string, id Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:         id.UserID,
		Email:          id.Email,
		Role:           id.Role,
		OrganizationID: id.OrganizationID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve los claims.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// Verifier adapta Parse al puerto tenant.TokenVerifier.
type Verifier struct {
	secret string
}

var _ tenant.TokenVerifier = (*Verifier)(nil)

// NewVerifier construye el verificador con el secreto compartido.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify implementa tenant.TokenVerifier.
func (v *Verifier) Verify(token string) (tenant.Claims, error) {
	c, err := Parse(v.secret, token)
	if err != nil {
		return tenant.Claims{}, err
	}
	return tenant.Claims{
		UserID:         c.UserID,
		Email:          c.Email,
		Role:           c.Role,
		OrganizationID: c.OrganizationID,
	}, nil
}
