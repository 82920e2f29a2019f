package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/pkg/jwt"
)

var cfg = jwt.Config{Secret: "secreto-de-pruebas", Issuer: "contable-api", TTL: time.Hour}

var identity = jwt.Identity{
	UserID:    "00000000-0000-0000-0000-000000000001",
	CompanyID: "00000000-0000-0000-0000-000000000002",
	Role:      "contador",
}

func TestGenerateYParse(t *testing.T) {
	tok, err := jwt.Generate(cfg, identity)
	require.NoError(t, err)

	got, err := jwt.Parse(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestParse_Expirado(t *testing.T) {
	expired := cfg
	expired.TTL = -time.Minute
	tok, err := jwt.Generate(expired, identity)
	require.NoError(t, err)

	_, err = jwt.Parse(cfg, tok)
	assert.ErrorIs(t, err, jwt.ErrExpired)
}

func TestParse_SecretOEmisorDistinto(t *testing.T) {
	tok, err := jwt.Generate(cfg, identity)
	require.NoError(t, err)

	other := cfg
	other.Secret = "otro-secreto"
	_, err = jwt.Parse(other, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalid)

	other = cfg
	other.Issuer = "otra-api"
	_, err = jwt.Parse(other, tok)
	assert.ErrorIs(t, err, jwt.ErrInvalid)

	// sin emisor configurado no se valida el claim iss
	other.Issuer = ""
	_, err = jwt.Parse(other, tok)
	assert.NoError(t, err)
}

func TestGenerate_RequiereUsuarioYEmpresa(t *testing.T) {
	_, err := jwt.Generate(cfg, jwt.Identity{UserID: identity.UserID})
	assert.Error(t, err)

	_, err = jwt.Generate(jwt.Config{}, identity)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, err := jwt.Parse(cfg, "no.es.un-token")
	assert.ErrorIs(t, err, jwt.ErrInvalid)
}
