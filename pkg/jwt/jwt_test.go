package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/invorya/stock-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "stock-api-test"
)

func TestGenerateAndParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "ana@almacen.pt", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "ana@almacen.pt", email)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "ana@almacen.pt", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "un token firmado con otro secret debe rechazarse")
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 42, "ana@almacen.pt", testIssuer, -5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := pkgjwt.Parse(testSecret, "no.es.un.jwt")
	assert.Error(t, err)
}

// Un token sin user_id válido no sirve para autenticar aunque la firma sea buena.
func TestParse_UserIDInvalido(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 0, "ana@almacen.pt", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 42, "ana@almacen.pt", testIssuer, 60)
	assert.Error(t, err)
}
