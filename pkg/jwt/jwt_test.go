package jwt

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

var ident = Identity{UserID: "u-1", Email: "ana@obra.co", Role: "admin", OrganizationID: "org-1"}

func TestGenerateAndVerify(t *testing.T) {
	tok, err := Generate(secret, "obra-api", ident, 24*time.Hour)
	require.NoError(t, err)

	got, err := NewVerifier(secret).Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "ana@obra.co", got.Email)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, "org-1", got.OrganizationID)
}

func TestGenerate_NombresDeClaims(t *testing.T) {
	tok, err := Generate(secret, "obra-api", ident, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	for _, k := range []string{"id", "email", "role", "organizationId", "exp"} {
		assert.Contains(t, raw, k)
	}
}

func TestVerify_Rechazos(t *testing.T) {
	expired, err := Generate(secret, "obra-api", ident, -time.Minute)
	require.NoError(t, err)
	_, err = NewVerifier(secret).Verify(expired)
	assert.Error(t, err, "token expirado")

	valid, err := Generate(secret, "obra-api", ident, time.Hour)
	require.NoError(t, err)
	_, err = NewVerifier("otro-secret").Verify(valid)
	assert.Error(t, err, "firma inválida")

	_, err = NewVerifier(secret).Verify("no.es.jwt")
	assert.Error(t, err, "malformado")

	none := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{UserID: "u-1"})
	unsigned, err := none.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewVerifier(secret).Verify(unsigned)
	assert.Error(t, err, "alg none")
}

func TestParse_SinExpiracion(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{UserID: "u-1", OrganizationID: "org-1", Role: "admin"})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = Parse(secret, s)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "obra-api", ident, time.Hour)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
